// Package pkg provides backward compatibility linting for database migrations.
//
// Migration Linter reads the SQL a migration runs and reports statements that
// break application code still running against the previous schema during a
// rolling deploy: dropped or renamed columns and tables, new NOT NULL
// constraints, unique constraints on populated tables and blocking index builds.
//
// # Package Structure
//
//   - reviewer: High-level API (recommended starting point)
//   - advisor: Rules, vendor profiles, the statement grouper and the analysis engine
//   - rules: Built-in vendor profiles (base, postgres, mysql, sqlite)
//   - types: Engine, rule level and mode, and the Advice finding
//   - config: Configuration file loading and custom pattern rules
//   - mysqlparser, pgparser: Split migration scripts into statements
//   - logger: slog setup for the command line tool
//
// # Getting Started
//
//	import (
//	    "github.com/nsxbet/migration-linter/pkg/reviewer"
//	    "github.com/nsxbet/migration-linter/pkg/types"
//	)
//
//	func main() {
//	    r, err := reviewer.New(types.Engine_POSTGRES)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    result, err := r.ReviewSQL(context.Background(), migrationSQL)
//	    // Process results...
//	}
//
// # Findings
//
// Every finding is routed to exactly one bucket. Errors fail the migration,
// warnings do not unless promoted, and findings of ignored rules are kept
// in the ignored bucket for reporting.
//
// One-liner rules look at one statement at a time. Transaction rules look at
// a whole statement group: a BEGIN/COMMIT block on engines with transactional
// DDL, or the entire migration on MySQL.
package pkg
