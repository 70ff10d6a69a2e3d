package sqlite

import (
	"regexp"
	"strings"

	"github.com/nsxbet/migration-linter/pkg/rules/base"
)

// SQLite cannot alter most column properties in place. Migration tools
// rebuild the table instead: either rename it to "<t>__old", create "<t>",
// copy rows and drop "<t>__old", or create "new__<t>", copy rows, drop "<t>"
// and rename "new__<t>" to "<t>".

const (
	oldSuffix = "__old"
	newPrefix = "new__"
)

var (
	dropTablePattern   = regexp.MustCompile(`^\s*DROP TABLE (\S+)`)
	renameTablePattern = regexp.MustCompile(`ALTER TABLE (\S+) RENAME TO (\S+)`)
	copyRowsPattern    = regexp.MustCompile(`^\s*INSERT INTO (\S+) \(([^)]*)\) SELECT (.*) FROM `)
	quotedIdentifier   = regexp.MustCompile("^(\"[^\"]+\"|`[^`]+`)$")
)

// isRebuildTable reports whether the identifier names a rebuild helper table.
func isRebuildTable(statement string) bool {
	return strings.Contains(statement, oldSuffix) || strings.Contains(statement, newPrefix)
}

// replacedByRebuild reports whether the group renames "new__<table>" to <table>.
func replacedByRebuild(statements []string, table string) bool {
	for _, stmt := range statements {
		m := renameTablePattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		if base.Unquote(m[1]) == newPrefix+table && base.Unquote(m[2]) == table {
			return true
		}
	}
	return false
}

// rebuildAddsNotNullColumn reports whether a row copy fills a NOT NULL column
// of the target table from a literal, i.e. the column did not exist before.
func rebuildAddsNotNullColumn(statements []string) bool {
	for i, stmt := range statements {
		m := copyRowsPattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		target := m[1]
		columns := splitList(m[2])
		values := splitList(m[3])
		if len(columns) != len(values) {
			continue
		}
		create := createStatement(statements[:i], target)
		if create == "" {
			continue
		}
		for k, value := range values {
			if quotedIdentifier.MatchString(value) {
				continue
			}
			if declaresNotNull(create, columns[k]) {
				return true
			}
		}
	}
	return false
}

func createStatement(statements []string, table string) string {
	for j := len(statements) - 1; j >= 0; j-- {
		if base.TableCreatedBefore(statements[j:j+1], 1, table) {
			return statements[j]
		}
	}
	return ""
}

func declaresNotNull(create, column string) bool {
	pattern, err := regexp.Compile(regexp.QuoteMeta(column) + `\s[^,]*NOT NULL`)
	if err != nil {
		return false
	}
	for _, m := range pattern.FindAllString(create, -1) {
		if base.AddsNotNull(m) {
			return true
		}
	}
	return false
}

func splitList(list string) []string {
	parts := strings.Split(list, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
