package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/rules/rulestest"
	"github.com/nsxbet/migration-linter/pkg/types"
)

func TestPostgreSQLRulesFromYAML(t *testing.T) {
	rulestest.RunDir(t, Profile())
}

func TestPostgreSQLProfile(t *testing.T) {
	p := Profile()
	require.Equal(t, types.Engine_POSTGRES, p.Engine())

	var codes []string
	for _, rule := range p.Rules() {
		codes = append(codes, rule.Describe().Code)
	}
	require.Equal(t, []string{
		advisor.CodeNotNull,
		advisor.CodeDropColumn,
		advisor.CodeDropTable,
		advisor.CodeRenameColumn,
		advisor.CodeRenameTable,
		advisor.CodeAlterColumn,
		advisor.CodeAddUnique,
		advisor.CodeCreateIndex,
		advisor.CodeDropIndex,
		advisor.CodeReindex,
		advisor.CodeAddUniqueColumn,
		advisor.CodeMultipleTableLocks,
	}, codes)

	for _, code := range []string{advisor.CodeCreateIndex, advisor.CodeDropIndex, advisor.CodeReindex} {
		rule, ok := p.Rule(code)
		require.True(t, ok, code)
		require.Equal(t, types.SQLReviewRuleLevel_WARNING, rule.Describe().Level, code)
	}
}

func TestMultipleTableLocksRule(t *testing.T) {
	tests := []struct {
		name       string
		statements []string
		want       bool
	}{
		{
			name:       "empty",
			statements: nil,
			want:       false,
		},
		{
			name: "same table many times",
			statements: []string{
				`ALTER TABLE "a" ADD COLUMN "x" integer NULL;`,
				`ALTER TABLE "a" ADD COLUMN "y" integer NULL;`,
				`ALTER TABLE "a" ADD COLUMN "z" integer NULL;`,
			},
			want: false,
		},
		{
			name: "schema qualified tables",
			statements: []string{
				`ALTER TABLE "public"."a" ADD COLUMN "x" integer NULL;`,
				`ALTER TABLE public."b" ADD COLUMN "y" integer NULL;`,
				`ALTER TABLE ONLY "public"."c" ADD COLUMN "z" integer NULL;`,
			},
			want: true,
		},
		{
			name: "schema qualified table altered twice",
			statements: []string{
				`ALTER TABLE "public"."a" ADD COLUMN "x" integer NULL;`,
				`ALTER TABLE "a" ADD COLUMN "y" integer NULL;`,
				`ALTER TABLE "public"."b" ADD COLUMN "z" integer NULL;`,
			},
			want: false,
		},
		{
			name: "unquoted tables are not counted",
			statements: []string{
				`ALTER TABLE a ADD COLUMN x integer NULL;`,
				`ALTER TABLE b ADD COLUMN y integer NULL;`,
				`ALTER TABLE c ADD COLUMN z integer NULL;`,
			},
			want: false,
		},
		{
			name: "three tables in one statement list",
			statements: []string{
				`ALTER TABLE "a" ADD COLUMN "x" integer NULL; ALTER TABLE "b" ADD COLUMN "y" integer NULL;`,
				`ALTER TABLE "c" ADD COLUMN "z" integer NULL;`,
			},
			want: true,
		},
	}

	rule := NewMultipleTableLocksRule()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rule.Evaluate(tc.statements))
		})
	}
}
