// Package postgres is the PostgreSQL vendor profile. PostgreSQL runs DDL
// inside transactions, so a migration is analysed as one atomic group.
package postgres

import (
	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/base"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// NewDropIndexRule returns the DROP_INDEX rule.
func NewDropIndexRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeDropIndex,
		Level:   types.SQLReviewRuleLevel_WARNING,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "DROP INDEX locks table",
	}, `DROP INDEX`, base.ConcurrentlyPattern.String())
}

// NewReindexRule returns the REINDEX rule.
func NewReindexRule() *advisor.PatternRule {
	return advisor.MustPatternRule(advisor.Definition{
		Code:    advisor.CodeReindex,
		Level:   types.SQLReviewRuleLevel_WARNING,
		Mode:    types.RuleMode_ONE_LINER,
		Message: "REINDEX locks table",
	}, `^\s*REINDEX`, "")
}

// Rules returns the PostgreSQL rules in evaluation order.
func Rules() []advisor.Rule {
	return advisor.Override(base.Rules(),
		NewCreateIndexRule(),
		NewDropIndexRule(),
		NewReindexRule(),
		NewAddUniqueColumnRule(),
		NewMultipleTableLocksRule(),
	)
}

// Profile builds the PostgreSQL profile.
func Profile() *advisor.Profile {
	return advisor.MustNewProfile(types.Engine_POSTGRES, Rules()...)
}
