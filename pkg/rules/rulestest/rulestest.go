// Package rulestest runs YAML rule fixtures against a vendor profile.
package rulestest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// TestCase is one fixture entry: a migration and the codes it must produce.
type TestCase struct {
	Name       string   `yaml:"name"`
	Statements []string `yaml:"statements"`
	Errors     []string `yaml:"errors,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty"`
}

// Load reads the fixtures of a YAML file.
func Load(t *testing.T, file string) []TestCase {
	t.Helper()

	f, err := os.Open(file)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	byteValue, err := io.ReadAll(f)
	require.NoError(t, err)

	var tests []TestCase
	require.NoError(t, yaml.Unmarshal(byteValue, &tests))
	require.NotEmpty(t, tests, "no fixtures in %s", file)
	return tests
}

// RunDir runs every testdata/*.yaml file of the calling package against the profile.
func RunDir(t *testing.T, profile *advisor.Profile) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			Run(t, profile, Load(t, file))
		})
	}
}

// Run analyses each fixture twice and checks the reported codes. Order is not
// significant, multiplicity is.
func Run(t *testing.T, profile *advisor.Profile, tests []TestCase) {
	t.Helper()

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			result := advisor.Analyse(profile, tc.Statements)
			require.ElementsMatch(t, tc.Errors, Codes(result.Errors), "errors")
			require.ElementsMatch(t, tc.Warnings, Codes(result.Warnings), "warnings")
			require.Empty(t, result.Ignored)

			again := advisor.Analyse(profile, tc.Statements)
			require.Equal(t, result, again, "analysis must be deterministic")
		})
	}
}

// Codes extracts the rule codes of a finding list.
func Codes(advices []*types.Advice) []string {
	var codes []string
	for _, advice := range advices {
		codes = append(codes, advice.Code)
	}
	return codes
}
