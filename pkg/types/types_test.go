package types

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseEngine(t *testing.T) {
	tests := []struct {
		input string
		want  Engine
	}{
		{"postgresql", Engine_POSTGRES},
		{"Postgres", Engine_POSTGRES},
		{"pg", Engine_POSTGRES},
		{"mysql", Engine_MYSQL},
		{" MySQL ", Engine_MYSQL},
		{"sqlite", Engine_SQLITE},
		{"sqlite3", Engine_SQLITE},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseEngine(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	for _, input := range []string{"", "oracle", "mssql"} {
		_, err := ParseEngine(input)
		require.True(t, errors.Is(err, ErrUnknownEngine), input)
	}
}

func TestEngineTransactionalDDL(t *testing.T) {
	require.True(t, Engine_POSTGRES.TransactionalDDL())
	require.True(t, Engine_SQLITE.TransactionalDDL())
	require.False(t, Engine_MYSQL.TransactionalDDL())
	require.False(t, Engine_ENGINE_UNSPECIFIED.TransactionalDDL())
}

func TestEngineEncoding(t *testing.T) {
	var holder struct {
		Engine Engine `json:"engine" yaml:"engine"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("engine: postgres\n"), &holder))
	require.Equal(t, Engine_POSTGRES, holder.Engine)

	require.NoError(t, json.Unmarshal([]byte(`{"engine":"sqlite3"}`), &holder))
	require.Equal(t, Engine_SQLITE, holder.Engine)

	require.Error(t, yaml.Unmarshal([]byte("engine: oracle\n"), &holder))

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	require.JSONEq(t, `{"engine":"sqlite"}`, string(out))
}

func TestParseRuleLevelAndMode(t *testing.T) {
	level, err := ParseRuleLevel("warning")
	require.NoError(t, err)
	require.Equal(t, SQLReviewRuleLevel_WARNING, level)
	_, err = ParseRuleLevel("fatal")
	require.Error(t, err)

	for _, input := range []string{"one_liner", "one-liner", "ONELINER"} {
		mode, err := ParseRuleMode(input)
		require.NoError(t, err, input)
		require.Equal(t, RuleMode_ONE_LINER, mode)
	}
	mode, err := ParseRuleMode("transaction")
	require.NoError(t, err)
	require.Equal(t, RuleMode_TRANSACTION, mode)
	_, err = ParseRuleMode("batch")
	require.Error(t, err)
}

func TestAdviceMarshal(t *testing.T) {
	advice := &Advice{
		Status:         Advice_WARNING,
		Level:          SQLReviewRuleLevel_WARNING,
		Code:           "CREATE_INDEX",
		Title:          "CREATE_INDEX",
		Content:        "CREATE INDEX locks table",
		Statements:     []string{"CREATE INDEX ON films ((lower(title)));"},
		StatementIndex: -1,
	}
	out, err := json.Marshal(advice)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "WARNING", decoded["status"])
	require.Equal(t, "CREATE_INDEX", decoded["code"])
}
