// Package sqlite is the SQLite vendor profile. It knows the table rebuild
// pattern migration tools use in place of ALTER COLUMN and does not report
// the helper tables such a rebuild creates, renames and drops.
package sqlite

import (
	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/base"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var (
	_ advisor.Rule = (*DropTableRule)(nil)
	_ advisor.Rule = (*NotNullRule)(nil)
)

// NewRenameTableRule returns the SQLite RENAME_TABLE rule.
func NewRenameTableRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeRenameTable,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "RENAMING tables",
	}, base.RenameTablePattern, oldSuffix+"|"+newPrefix)
}

// DropTableRule is the SQLite variant of DROP_TABLE.
type DropTableRule struct {
	advisor.Definition
}

// NewDropTableRule returns the SQLite DROP_TABLE rule.
func NewDropTableRule() *DropTableRule {
	return &DropTableRule{Definition: advisor.Definition{
		Code:    advisor.CodeDropTable,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "DROPPING table",
	}}
}

// Evaluate implements advisor.Rule.
func (*DropTableRule) Evaluate(statements []string) bool {
	for _, stmt := range statements {
		m := dropTablePattern.FindStringSubmatch(stmt)
		if m == nil || isRebuildTable(m[1]) {
			continue
		}
		if !replacedByRebuild(statements, base.Unquote(m[1])) {
			return true
		}
	}
	return false
}

// NotNullRule extends NOT_NULL with columns added through a table rebuild.
type NotNullRule struct {
	*base.NotNullRule
}

// NewNotNullRule returns the SQLite NOT_NULL rule.
func NewNotNullRule() *NotNullRule {
	return &NotNullRule{NotNullRule: base.NewNotNullRule()}
}

// Evaluate implements advisor.Rule.
func (r *NotNullRule) Evaluate(statements []string) bool {
	return r.NotNullRule.Evaluate(statements) || rebuildAddsNotNullColumn(statements)
}

// Rules returns the SQLite rules in evaluation order.
func Rules() []advisor.Rule {
	return advisor.Override(base.Rules(),
		NewNotNullRule(),
		NewDropTableRule(),
		NewRenameTableRule(),
	)
}

// Profile builds the SQLite profile.
func Profile() *advisor.Profile {
	return advisor.MustNewProfile(types.Engine_SQLITE, Rules()...)
}
