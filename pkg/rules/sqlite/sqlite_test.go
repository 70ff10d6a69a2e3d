package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/migration-linter/pkg/rules/rulestest"
)

func TestSQLiteRulesFromYAML(t *testing.T) {
	rulestest.RunDir(t, Profile())
}

func TestReplacedByRebuild(t *testing.T) {
	statements := []string{
		`CREATE TABLE "new__users" ("id" integer NOT NULL PRIMARY KEY);`,
		`DROP TABLE "users";`,
		`ALTER TABLE "new__users" RENAME TO "users";`,
	}
	require.True(t, replacedByRebuild(statements, "users"))
	require.False(t, replacedByRebuild(statements, "accounts"))
	require.False(t, replacedByRebuild(nil, "users"))
}

func TestRebuildAddsNotNullColumn(t *testing.T) {
	tests := []struct {
		name       string
		statements []string
		want       bool
	}{
		{
			name: "literal copied into not null column",
			statements: []string{
				`CREATE TABLE "t" ("id" integer NOT NULL PRIMARY KEY, "c" integer NOT NULL);`,
				`INSERT INTO "t" ("id", "c") SELECT "id", 0 FROM "t__old";`,
			},
			want: true,
		},
		{
			name: "existing column copied",
			statements: []string{
				`CREATE TABLE "t" ("id" integer NOT NULL PRIMARY KEY, "c" integer NOT NULL);`,
				`INSERT INTO "t" ("id", "c") SELECT "id", "c" FROM "t__old";`,
			},
			want: false,
		},
		{
			name: "literal copied into nullable column",
			statements: []string{
				`CREATE TABLE "t" ("id" integer NOT NULL PRIMARY KEY, "c" integer NULL);`,
				`INSERT INTO "t" ("id", "c") SELECT "id", 0 FROM "t__old";`,
			},
			want: false,
		},
		{
			name: "target created after the copy",
			statements: []string{
				`INSERT INTO "t" ("id", "c") SELECT "id", 0 FROM "t__old";`,
				`CREATE TABLE "t" ("id" integer NOT NULL PRIMARY KEY, "c" integer NOT NULL);`,
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rebuildAddsNotNullColumn(tc.statements))
		})
	}
}

func TestSQLiteRenameTableSkipsRebuildTables(t *testing.T) {
	rule := NewRenameTableRule()
	require.False(t, rule.Matches(`ALTER TABLE "t" RENAME TO "t__old";`))
	require.False(t, rule.Matches(`ALTER TABLE "new__t" RENAME TO "t";`))
	require.True(t, rule.Matches(`ALTER TABLE "t" RENAME TO "u";`))
}
