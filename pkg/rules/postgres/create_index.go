package postgres

import (
	"regexp"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/base"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var createIndexPattern = regexp.MustCompile(`CREATE (UNIQUE )?INDEX.*ON (.*) \(`)

var _ advisor.Rule = (*CreateIndexRule)(nil)

// CreateIndexRule flags the first non-concurrent index build of a group,
// unless the indexed table was created earlier in the same group.
type CreateIndexRule struct {
	advisor.Definition
}

// NewCreateIndexRule returns the CREATE_INDEX rule.
func NewCreateIndexRule() *CreateIndexRule {
	return &CreateIndexRule{Definition: advisor.Definition{
		Code:    advisor.CodeCreateIndex,
		Level:   types.SQLReviewRuleLevel_WARNING,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "CREATE INDEX locks table",
	}}
}

// Evaluate implements advisor.Rule.
func (*CreateIndexRule) Evaluate(statements []string) bool {
	for i, stmt := range statements {
		if base.ConcurrentlyPattern.MatchString(stmt) {
			continue
		}
		if m := createIndexPattern.FindStringSubmatch(stmt); m != nil {
			return !base.TableCreatedBefore(statements, i, m[2])
		}
	}
	return false
}
