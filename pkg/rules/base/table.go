// Package base holds the rules every vendor profile starts from and the text
// helpers vendor rules share.
package base

import (
	"strings"
)

// TableCreatedBefore reports whether a statement before index idx creates the
// table. The table name is compared verbatim, quotes included, and must be
// followed by a non-identifier character.
func TableCreatedBefore(statements []string, idx int, table string) bool {
	table = strings.TrimSpace(table)
	if table == "" {
		return false
	}
	prefix := "CREATE TABLE " + table
	for j := 0; j < idx && j < len(statements); j++ {
		stmt := strings.TrimSpace(statements[j])
		if !strings.HasPrefix(stmt, prefix) {
			continue
		}
		rest := stmt[len(prefix):]
		if rest == "" || !isIdentifierByte(rest[0]) {
			return true
		}
	}
	return false
}

// Unquote strips identifier quotes and a trailing semicolon.
func Unquote(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ";")
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '"' && last == '"') || (first == '`' && last == '`') || (first == '[' && last == ']') {
			return name[1 : len(name)-1]
		}
	}
	return name
}

func isIdentifierByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
