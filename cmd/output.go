package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

const statementWidth = 120

func isOutputFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	default:
		return false
	}
}

func writeReports(w io.Writer, reports []*fileReport, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(map[string]interface{}{"migrations": reports}), "failed to encode report")
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return errors.Wrap(encoder.Encode(map[string]interface{}{"migrations": reports}), "failed to encode report")
	case "text":
		for _, report := range reports {
			writeText(w, report)
		}
		return nil
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, report *fileReport) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "%s\n", report.File)

	for _, advice := range report.Result.Advices() {
		label := statusColor(advice.Status).Sprintf("%-7s", advice.Status)
		fmt.Fprintf(w, "  %s %s: %s\n", label, advice.Code, advice.Content)
		if advice.StatementIndex >= 0 && len(advice.Statements) == 1 {
			stmt := advisor.NormalizeStatement(advice.Statements[0], statementWidth)
			fmt.Fprintf(w, "          %s\n", advisor.StatementColor(stmt).Sprint(stmt))
			continue
		}
		fmt.Fprintf(w, "          in statement group %d (%d statements)\n", advice.GroupIndex, len(advice.Statements))
	}

	summary := report.Result.String()
	switch {
	case report.Result.HasErrors():
		color.New(color.FgRed).Fprintln(w, summary)
	case report.Result.HasWarnings():
		color.New(color.FgYellow).Fprintln(w, summary)
	default:
		color.New(color.FgGreen).Fprintln(w, summary)
	}
	fmt.Fprintln(w)
}

func statusColor(status types.Advice_Status) *color.Color {
	switch status {
	case types.Advice_ERROR:
		return color.New(color.FgRed, color.Bold)
	case types.Advice_WARNING:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}
