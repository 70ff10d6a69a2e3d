// Package mysql is the MySQL vendor profile. MySQL commits implicitly around
// every DDL statement, so explicit transaction markers are not trusted and a
// migration is always analysed as a single group.
package mysql

import (
	"regexp"
	"strings"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/base"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var (
	modifyPattern = regexp.MustCompile(`ALTER TABLE .* MODIFY`)
	// A MODIFY ending in an explicit nullability clause is a nullability
	// change, which NOT_NULL already judges.
	nullabilityTailPattern = regexp.MustCompile(`(^|\s)(NOT\s+)?NULL$`)
)

var _ advisor.Rule = (*AlterColumnRule)(nil)

// AlterColumnRule is the MySQL variant of ALTER_COLUMN.
type AlterColumnRule struct {
	advisor.Definition
}

// NewAlterColumnRule returns the MySQL ALTER_COLUMN rule.
func NewAlterColumnRule() *AlterColumnRule {
	return &AlterColumnRule{Definition: advisor.Definition{
		Code:    advisor.CodeAlterColumn,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: base.AlterColumnMessage,
	}}
}

// Evaluate implements advisor.Rule.
func (*AlterColumnRule) Evaluate(statements []string) bool {
	for _, stmt := range statements {
		if !modifyPattern.MatchString(stmt) {
			continue
		}
		tail := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
		if !nullabilityTailPattern.MatchString(tail) {
			return true
		}
	}
	return false
}

// Rules returns the MySQL rules in evaluation order.
func Rules() []advisor.Rule {
	return advisor.Override(base.Rules(), NewAlterColumnRule())
}

// Profile builds the MySQL profile.
func Profile() *advisor.Profile {
	return advisor.MustNewProfile(types.Engine_MYSQL, Rules()...)
}
