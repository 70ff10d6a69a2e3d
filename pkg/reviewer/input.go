package reviewer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/mysqlparser"
	"github.com/nsxbet/migration-linter/pkg/pgparser"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// SplitMode selects how a migration script is cut into statements.
type SplitMode string

const (
	// SplitParser uses the engine's SQL lexer, so statements may span lines.
	SplitParser SplitMode = "parser"
	// SplitLines treats every non-blank line as one statement, the layout
	// framework migration tools print.
	SplitLines SplitMode = "lines"
)

// ParseSplitMode resolves a split mode name. Empty means SplitParser.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitParser:
		return SplitParser, nil
	case SplitLines:
		return SplitLines, nil
	default:
		return "", errors.Wrapf(advisor.ErrConfiguration, "unknown split mode %q", s)
	}
}

// SplitStatements cuts a migration script into the ordered statement list
// the linter consumes. Comment-only statements are dropped and leading
// comments are stripped so rule patterns see the statement keyword first.
// Statements spanning several lines are joined into one line.
func SplitStatements(engine types.Engine, sql string, mode SplitMode) ([]string, error) {
	var raw []string
	switch mode {
	case SplitLines:
		raw = strings.Split(sql, "\n")
	case SplitParser, "":
		var err error
		raw, err = splitWithParser(engine, sql)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(advisor.ErrConfiguration, "unknown split mode %q", mode)
	}

	statements := make([]string, 0, len(raw))
	for _, stmt := range raw {
		stmt = stripLeadingComments(stmt)
		if stmt == "" || stmt == ";" {
			continue
		}
		statements = append(statements, joinLines(stmt))
	}
	return statements, nil
}

func splitWithParser(engine types.Engine, sql string) ([]string, error) {
	if engine == types.Engine_MYSQL {
		list, err := mysqlparser.SplitSQL(sql)
		if err != nil {
			return nil, errors.Wrap(err, "failed to split mysql script")
		}
		raw := make([]string, 0, len(list))
		for _, stmt := range list {
			if stmt.Empty {
				continue
			}
			raw = append(raw, stmt.Text)
		}
		return raw, nil
	}

	raw, err := pgparser.SplitSQL(sql)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split %s script", engine.Key())
	}
	return raw, nil
}

func stripLeadingComments(stmt string) string {
	for {
		stmt = strings.TrimSpace(stmt)
		switch {
		case strings.HasPrefix(stmt, "--"):
			end := strings.IndexByte(stmt, '\n')
			if end < 0 {
				return ""
			}
			stmt = stmt[end+1:]
		case strings.HasPrefix(stmt, "/*"):
			end := strings.Index(stmt, "*/")
			if end < 0 {
				return ""
			}
			stmt = stmt[end+2:]
		default:
			return stmt
		}
	}
}

func joinLines(stmt string) string {
	if !strings.Contains(stmt, "\n") {
		return stmt
	}
	lines := strings.Split(stmt, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
