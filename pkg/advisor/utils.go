package advisor

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeStatement collapses whitespace and truncates a statement for reports and logs.
func NormalizeStatement(statement string, maxLength int) string {
	statement = whitespaceRun.ReplaceAllString(strings.TrimSpace(statement), " ")
	if maxLength > 3 && len(statement) > maxLength {
		return statement[:maxLength-3] + "..."
	}
	return statement
}

// StatementColor picks a colour by statement kind, following the Rails log convention.
func StatementColor(statement string) *color.Color {
	upper := strings.ToUpper(strings.TrimSpace(statement))
	switch {
	case strings.HasPrefix(upper, "SELECT"):
		return color.New(color.FgBlue)
	case strings.HasPrefix(upper, "INSERT"):
		return color.New(color.FgGreen)
	case strings.HasPrefix(upper, "UPDATE"):
		return color.New(color.FgYellow)
	case strings.HasPrefix(upper, "DELETE"), strings.HasPrefix(upper, "ROLLBACK"):
		return color.New(color.FgRed)
	case IsTransactionMarker(upper):
		return color.New(color.FgCyan)
	case strings.HasPrefix(upper, "CREATE"), strings.HasPrefix(upper, "ALTER"),
		strings.HasPrefix(upper, "DROP"), strings.HasPrefix(upper, "REINDEX"),
		strings.HasPrefix(upper, "RENAME"):
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgWhite)
	}
}
