package postgres

import (
	"regexp"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// maxLockedTables is the number of distinct tables one transaction may alter.
const maxLockedTables = 2

// alterTablePattern captures the quoted table name, with or without a schema
// qualifier in front of it.
var alterTablePattern = regexp.MustCompile(`ALTER TABLE (?:ONLY )?(?:IF EXISTS )?(?:(?:"[^"]+"|\w+)\.)?"([^"]+)"`)

var _ advisor.Rule = (*MultipleTableLocksRule)(nil)

// MultipleTableLocksRule flags groups altering more than maxLockedTables distinct tables.
type MultipleTableLocksRule struct {
	advisor.Definition
}

// NewMultipleTableLocksRule returns the MULTIPLE_TABLE_LOCKS rule.
func NewMultipleTableLocksRule() *MultipleTableLocksRule {
	return &MultipleTableLocksRule{Definition: advisor.Definition{
		Code:    advisor.CodeMultipleTableLocks,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "Locking more than two tables in one transaction raises the risk of deadlocks",
	}}
}

// Evaluate implements advisor.Rule.
func (*MultipleTableLocksRule) Evaluate(statements []string) bool {
	tables := make(map[string]struct{})
	for _, stmt := range statements {
		for _, m := range alterTablePattern.FindAllStringSubmatch(stmt, -1) {
			tables[m[1]] = struct{}{}
		}
	}
	return len(tables) > maxLockedTables
}
