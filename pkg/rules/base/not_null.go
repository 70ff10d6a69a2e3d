package base

import (
	"strings"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var _ advisor.Rule = (*NotNullRule)(nil)

// NotNullRule flags NOT NULL constraints added to existing columns. A group
// whose last statement sets a column default is accepted: old code keeps
// inserting rows without the column.
type NotNullRule struct {
	advisor.Definition
}

// NewNotNullRule returns the NOT_NULL rule.
func NewNotNullRule() *NotNullRule {
	return &NotNullRule{Definition: advisor.Definition{
		Code:    advisor.CodeNotNull,
		Level:   types.SQLReviewRuleLevel_ERROR,
		Mode:    types.RuleMode_TRANSACTION,
		Message: "NOT NULL constraint on columns",
	}}
}

// Evaluate implements advisor.Rule.
func (*NotNullRule) Evaluate(statements []string) bool {
	if len(statements) == 0 || EndsWithDefault(statements) {
		return false
	}
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if strings.HasPrefix(stmt, "CREATE TABLE") || strings.HasPrefix(stmt, "CREATE INDEX") {
			continue
		}
		if AddsNotNull(stmt) {
			return true
		}
	}
	return false
}

// AddsNotNull reports whether the statement holds a NOT NULL that is not part of DROP NOT NULL.
func AddsNotNull(statement string) bool {
	rest := statement
	offset := 0
	for {
		i := strings.Index(rest, "NOT NULL")
		if i < 0 {
			return false
		}
		if !strings.HasSuffix(statement[:offset+i], "DROP ") {
			return true
		}
		offset += i + len("NOT NULL")
		rest = statement[offset:]
	}
}

// EndsWithDefault reports whether the last statement of the group sets a
// default. Trailing transaction markers such as COMMIT are skipped.
func EndsWithDefault(statements []string) bool {
	last := len(statements) - 1
	for last >= 0 && advisor.IsTransactionMarker(statements[last]) {
		last--
	}
	if last < 0 {
		return false
	}
	return strings.Contains(statements[last], "SET DEFAULT")
}
