package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableCreatedBefore(t *testing.T) {
	statements := []string{
		`CREATE TABLE "films" ("title" text);`,
		`CREATE TABLE films_archive (title text);`,
		`CREATE INDEX ON "films" ((lower("title")));`,
	}

	tests := []struct {
		name  string
		idx   int
		table string
		want  bool
	}{
		{"quoted table created earlier", 2, `"films"`, true},
		{"not before itself", 0, `"films"`, false},
		{"quotes are significant", 2, `films`, false},
		{"longer name does not count", 2, `films_arch`, false},
		{"unquoted table created earlier", 2, `films_archive`, true},
		{"empty table", 2, ` `, false},
		{"index past the end", 10, `films_archive`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TableCreatedBefore(statements, tc.idx, tc.table))
		})
	}
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "users", Unquote(`"users"`))
	require.Equal(t, "users", Unquote("`users`;"))
	require.Equal(t, "users", Unquote("[users]"))
	require.Equal(t, "users", Unquote(" users "))
	require.Equal(t, `"`, Unquote(`"`))
}

func TestAddsNotNull(t *testing.T) {
	require.True(t, AddsNotNull(`ALTER TABLE "t" ALTER COLUMN "c" SET NOT NULL;`))
	require.False(t, AddsNotNull(`ALTER TABLE "t" ALTER COLUMN "c" DROP NOT NULL;`))
	require.True(t, AddsNotNull(`ALTER TABLE "t" ALTER COLUMN "a" DROP NOT NULL, ALTER COLUMN "b" SET NOT NULL;`))
	require.False(t, AddsNotNull(`ALTER TABLE "t" ADD COLUMN "c" integer NULL;`))
}

func TestNotNullRule(t *testing.T) {
	rule := NewNotNullRule()
	require.False(t, rule.Evaluate(nil))
	require.False(t, rule.Evaluate([]string{`CREATE TABLE "t" ("id" integer NOT NULL);`}))
	require.True(t, rule.Evaluate([]string{`ALTER TABLE "t" ADD COLUMN "c" integer DEFAULT 1 NOT NULL;`}))
	require.False(t, rule.Evaluate([]string{
		`ALTER TABLE "t" ADD COLUMN "c" integer DEFAULT 1 NOT NULL;`,
		`ALTER TABLE "t" ALTER COLUMN "c" SET DEFAULT 1;`,
	}))
}

func TestEndsWithDefault(t *testing.T) {
	tests := []struct {
		name       string
		statements []string
		want       bool
	}{
		{name: "empty"},
		{
			name:       "last statement sets default",
			statements: []string{`ALTER TABLE "t" ADD COLUMN "c" integer DEFAULT 1 NOT NULL;`, `ALTER TABLE "t" ALTER COLUMN "c" SET DEFAULT 1;`},
			want:       true,
		},
		{
			name:       "default dropped last",
			statements: []string{`ALTER TABLE "t" ALTER COLUMN "c" SET DEFAULT 1;`, `ALTER TABLE "t" ALTER COLUMN "c" DROP DEFAULT;`},
		},
		{
			name: "commit after default",
			statements: []string{
				"BEGIN;",
				`ALTER TABLE "t" ADD COLUMN "c" integer DEFAULT 1 NOT NULL;`,
				`ALTER TABLE "t" ALTER COLUMN "c" SET DEFAULT 1;`,
				"COMMIT;",
			},
			want: true,
		},
		{
			name:       "markers only",
			statements: []string{"BEGIN;", "COMMIT;"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EndsWithDefault(tc.statements))
		})
	}
}

func TestAddUniqueRule(t *testing.T) {
	rule := NewAddUniqueRule()
	require.True(t, rule.Evaluate([]string{`CREATE UNIQUE INDEX "i" ON "t" ("c");`}))
	require.False(t, rule.Evaluate([]string{`CREATE UNIQUE INDEX CONCURRENTLY "i" ON "t" ("c");`}))
	require.False(t, rule.Evaluate([]string{
		`CREATE TABLE "t" ("c" integer);`,
		`ALTER TABLE "t" ADD CONSTRAINT "t_c_uniq" UNIQUE ("c");`,
	}))
	require.False(t, rule.Evaluate([]string{`CREATE INDEX "i" ON "t" ("c");`}))
}

func TestRulesOrder(t *testing.T) {
	var codes []string
	for _, rule := range Rules() {
		require.NoError(t, rule.Describe().Validate())
		codes = append(codes, rule.Describe().Code)
	}
	require.Equal(t, []string{
		"NOT_NULL", "DROP_COLUMN", "DROP_TABLE", "RENAME_COLUMN", "RENAME_TABLE", "ALTER_COLUMN", "ADD_UNIQUE",
	}, codes)
}
