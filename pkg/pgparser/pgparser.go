// Package pgparser splits PostgreSQL and SQLite migration scripts into
// statements with the PostgreSQL scanner from libpg_query.
package pgparser

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/pkg/errors"
)

// SplitSQL splits a script into statements. Each statement is trimmed and
// terminated by exactly one semicolon; empty statements are dropped.
//
// The scanner understands quoting, comments and dollar-quoted bodies but does
// not validate the grammar, so SQLite scripts split correctly as well.
func SplitSQL(script string) ([]string, error) {
	parts, err := pg_query.SplitWithScanner(script, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to split SQL statements")
	}

	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		stmt := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ";"))
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt+";")
	}
	return statements, nil
}

// Validate parses a script with the PostgreSQL grammar and returns the first syntax error.
func Validate(script string) error {
	if _, err := pg_query.Parse(script); err != nil {
		return errors.Wrap(err, "invalid PostgreSQL syntax")
	}
	return nil
}
