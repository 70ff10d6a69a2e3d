package base

import (
	"regexp"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var (
	// ConcurrentlyPattern matches index builds that do not block writes.
	ConcurrentlyPattern        = regexp.MustCompile(`INDEX CONCURRENTLY`)
	createUniqueIndexPattern   = regexp.MustCompile(`CREATE UNIQUE INDEX.*ON (.*) \(`)
	addUniqueConstraintPattern = regexp.MustCompile(`ALTER TABLE (.*) ADD CONSTRAINT .* UNIQUE`)
)

var _ advisor.Rule = (*AddUniqueRule)(nil)

// AddUniqueRule flags unique indexes and constraints on tables that already
// hold rows. Only the first unique statement of the group is considered;
// concurrent index builds are skipped.
type AddUniqueRule struct {
	advisor.Definition
}

// NewAddUniqueRule returns the ADD_UNIQUE rule.
func NewAddUniqueRule() *AddUniqueRule {
	return &AddUniqueRule{Definition: advisor.Definition{
		Code:    advisor.CodeAddUnique,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "ADDING unique constraint",
	}}
}

// Evaluate implements advisor.Rule.
func (*AddUniqueRule) Evaluate(statements []string) bool {
	for i, stmt := range statements {
		if ConcurrentlyPattern.MatchString(stmt) {
			continue
		}
		m := createUniqueIndexPattern.FindStringSubmatch(stmt)
		if m == nil {
			m = addUniqueConstraintPattern.FindStringSubmatch(stmt)
		}
		if m != nil {
			return !TableCreatedBefore(statements, i, m[1])
		}
	}
	return false
}
