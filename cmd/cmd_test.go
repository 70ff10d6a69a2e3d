package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRulesCommand(t *testing.T) {
	out := execute(t, "rules", "--engine", "postgresql", "--output", "yaml")
	require.Contains(t, out, "code: MULTIPLE_TABLE_LOCKS")
	require.Contains(t, out, "engine: postgresql")
	require.NotContains(t, out, "engine: mysql")

	out = execute(t, "rules", "--engine", "sqlite", "--output", "table")
	require.Contains(t, out, "DROP_TABLE")
	require.Contains(t, out, "MESSAGE")
}

func TestCheckCommand(t *testing.T) {
	out := execute(t, "check", "--engine", "postgresql", "--output", "json", "testdata/0001_add_field.sql")

	var report struct {
		Migrations []struct {
			File   string `json:"file"`
			Result struct {
				Summary struct {
					Total int `json:"total"`
				} `json:"summary"`
			} `json:"result"`
		} `json:"migrations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Migrations, 1)
	require.Equal(t, "testdata/0001_add_field.sql", report.Migrations[0].File)
	require.Zero(t, report.Migrations[0].Result.Summary.Total)
}

func TestCheckCommandRejectsUnknownOutput(t *testing.T) {
	rootCmd.SetArgs([]string{"check", "--engine", "postgresql", "--output", "xml", "testdata/0001_add_field.sql"})
	require.Error(t, rootCmd.Execute())
	// reset the persistent flag value for other tests
	require.NoError(t, checkCmd.Flags().Set("output", "text"))
}

func TestCheckCommandIgnoreFromEnvironment(t *testing.T) {
	t.Setenv("MIGRATION_LINTER_IGNORE", "NOT_NULL,DROP_TABLE")
	out := execute(t, "check", "--engine", "postgresql", "--output", "json", "testdata/0002_not_null.sql")

	var report struct {
		Migrations []struct {
			Result struct {
				Summary struct {
					Errors  int `json:"errors"`
					Ignored int `json:"ignored"`
				} `json:"summary"`
			} `json:"result"`
		} `json:"migrations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Migrations, 1)
	require.Zero(t, report.Migrations[0].Result.Summary.Errors)
	require.Equal(t, 1, report.Migrations[0].Result.Summary.Ignored)
}

func TestCodeList(t *testing.T) {
	t.Setenv("MIGRATION_LINTER_WARNINGS_AS_ERRORS", "CREATE_INDEX, REINDEX")
	viper.SetEnvPrefix("MIGRATION_LINTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	require.Equal(t, []string{"CREATE_INDEX", "REINDEX"}, codeList("warnings-as-errors"))
}

func TestCheckCommandValidate(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, checkCmd.Flags().Set("validate", "false"))
	})

	rootCmd.SetArgs([]string{"check", "--engine", "postgresql", "--validate", "testdata/0003_broken.sql"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "testdata/0003_broken.sql")

	out := execute(t, "check", "--engine", "postgresql", "--validate", "--output", "json", "testdata/0001_add_field.sql")
	require.Contains(t, out, `"migrations"`)
}
