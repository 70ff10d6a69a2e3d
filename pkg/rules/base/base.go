package base

import (
	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// NewDropColumnRule returns the DROP_COLUMN rule.
func NewDropColumnRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeDropColumn,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "DROPPING columns",
	}, `DROP COLUMN`, "")
}

// NewDropTableRule returns the DROP_TABLE rule.
func NewDropTableRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeDropTable,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "DROPPING table",
	}, `^\s*DROP TABLE`, "")
}

// NewRenameColumnRule returns the RENAME_COLUMN rule.
func NewRenameColumnRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeRenameColumn,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "RENAMING columns",
	}, `ALTER TABLE .* CHANGE|ALTER TABLE .* RENAME COLUMN`, "")
}

// RenameTablePattern matches both RENAME TABLE and ALTER TABLE ... RENAME TO.
const RenameTablePattern = `RENAME TABLE|ALTER TABLE .* RENAME TO`

// NewRenameTableRule returns the RENAME_TABLE rule.
func NewRenameTableRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeRenameTable,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "RENAMING tables",
	}, RenameTablePattern, "")
}

// AlterColumnMessage is shared by the vendor variants of ALTER_COLUMN.
const AlterColumnMessage = "ALTERING columns (Could be backward compatible. You may ignore this migration.)"

// NewAlterColumnRule returns the ALTER_COLUMN rule.
func NewAlterColumnRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeAlterColumn,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_ONE_LINER,
		Message: AlterColumnMessage,
	}, `ALTER TABLE .* MODIFY|ALTER TABLE .* ALTER COLUMN .* TYPE`, "")
}

// Rules returns a fresh copy of the rules shared by every vendor, in evaluation order.
func Rules() []advisor.Rule {
	return []advisor.Rule{
		NewNotNullRule(),
		NewDropColumnRule(),
		NewDropTableRule(),
		NewRenameColumnRule(),
		NewRenameTableRule(),
		NewAlterColumnRule(),
		NewAddUniqueRule(),
	}
}
