package advisor

import (
	"log/slog"
	"regexp"

	"github.com/nsxbet/migration-linter/pkg/types"
)

var (
	beginMarker  = regexp.MustCompile(`(?i)^\s*(BEGIN|BEGIN\s+(TRANSACTION|WORK)|START\s+TRANSACTION)\s*;?\s*$`)
	commitMarker = regexp.MustCompile(`(?i)^\s*(COMMIT|END|ROLLBACK)(\s+(TRANSACTION|WORK))?\s*;?\s*$`)
)

// StatementGroup is a run of consecutive statements evaluated as one atomic unit.
type StatementGroup struct {
	Index      int
	Offset     int
	Statements []string
}

// IsTransactionMarker reports whether a statement opens or closes an explicit transaction.
func IsTransactionMarker(statement string) bool {
	return beginMarker.MatchString(statement) || commitMarker.MatchString(statement)
}

// GroupStatements partitions statements into transaction-scoped groups.
//
// Engines with transactional DDL treat the whole input as one group unless it
// carries explicit BEGIN/COMMIT markers; then every marked block is a group and
// every statement outside a block runs on its own. A migration with several
// blocks is therefore not analysed as a whole: transaction rules such as
// MULTIPLE_TABLE_LOCKS count per block, and a table created in one block does
// not exempt an index built in another. Markers stay in their group. Engines
// without transactional DDL always yield a single group. Concatenating the
// groups gives back the input unchanged.
func GroupStatements(engine types.Engine, statements []string) []StatementGroup {
	if len(statements) == 0 {
		return nil
	}
	if !engine.TransactionalDDL() || !hasMarkers(statements) {
		return []StatementGroup{{Index: 0, Offset: 0, Statements: statements}}
	}

	var groups []StatementGroup
	start, inBlock := -1, false
	flush := func(end int) {
		if start < 0 || end <= start {
			return
		}
		groups = append(groups, StatementGroup{
			Index:      len(groups),
			Offset:     start,
			Statements: statements[start:end],
		})
		start = -1
	}

	for i, stmt := range statements {
		switch {
		case beginMarker.MatchString(stmt):
			flush(i)
			start, inBlock = i, true
		case inBlock && commitMarker.MatchString(stmt):
			flush(i + 1)
			inBlock = false
		case inBlock:
		default:
			start = i
			flush(i + 1)
		}
	}
	flush(len(statements))

	slog.Debug("grouped statements", "engine", engine, "statements", len(statements), "groups", len(groups))
	return groups
}

func hasMarkers(statements []string) bool {
	for _, stmt := range statements {
		if IsTransactionMarker(stmt) {
			return true
		}
	}
	return false
}
