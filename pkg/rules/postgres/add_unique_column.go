package postgres

import (
	"regexp"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/base"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var addUniqueColumnPattern = regexp.MustCompile(`ALTER TABLE (.*) ADD COLUMN .*UNIQUE CONSTRAINT.*`)

var _ advisor.Rule = (*AddUniqueColumnRule)(nil)

// AddUniqueColumnRule flags a column added with a unique constraint to a
// pre-existing table: building the constraint scans and locks the table.
type AddUniqueColumnRule struct {
	advisor.Definition
}

// NewAddUniqueColumnRule returns the ADD_UNIQUE_COLUMN rule.
func NewAddUniqueColumnRule() *AddUniqueColumnRule {
	return &AddUniqueColumnRule{Definition: advisor.Definition{
		Code:    advisor.CodeAddUniqueColumn,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "Adding a column with UNIQUE CONSTRAINT locks table",
	}}
}

// Evaluate implements advisor.Rule.
func (*AddUniqueColumnRule) Evaluate(statements []string) bool {
	for i, stmt := range statements {
		if m := addUniqueColumnPattern.FindStringSubmatch(stmt); m != nil {
			return !base.TableCreatedBefore(statements, i, m[1])
		}
	}
	return false
}
