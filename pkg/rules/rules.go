// Package rules wires the built-in vendor profiles into a registry.
package rules

import (
	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/mysql"
	"github.com/nsxbet/migration-linter/pkg/rules/postgres"
	"github.com/nsxbet/migration-linter/pkg/rules/sqlite"
)

// NewDefaultRegistry returns a Registry with every built-in vendor profile.
func NewDefaultRegistry() *advisor.Registry {
	r := advisor.NewRegistry()
	r.Register(postgres.Profile())
	r.Register(mysql.Profile())
	r.Register(sqlite.Profile())
	return r
}
