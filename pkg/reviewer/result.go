package reviewer

import (
	"fmt"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// ReviewResult contains the findings of one migration review, partitioned
// into the error, ignored and warning buckets.
type ReviewResult struct {
	// Errors are findings that fail the migration.
	Errors []*types.Advice `json:"errors" yaml:"errors"`

	// Ignored are findings of rules the caller chose to ignore.
	Ignored []*types.Advice `json:"ignored" yaml:"ignored"`

	// Warnings are findings that do not fail the migration on their own.
	Warnings []*types.Advice `json:"warnings" yaml:"warnings"`

	// Summary provides aggregate statistics about the review.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary provides aggregate statistics about a review.
type Summary struct {
	// Total is the number of findings across all buckets.
	Total int `json:"total" yaml:"total"`

	// Errors is the number of findings in the error bucket.
	Errors int `json:"errors" yaml:"errors"`

	// Warnings is the number of findings in the warning bucket.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Ignored is the number of findings in the ignored bucket.
	Ignored int `json:"ignored" yaml:"ignored"`
}

func newReviewResult(result *advisor.Result) *ReviewResult {
	r := &ReviewResult{
		Errors:   nonNil(result.Errors),
		Ignored:  nonNil(result.Ignored),
		Warnings: nonNil(result.Warnings),
	}
	r.Summary = Summary{
		Total:    len(r.Errors) + len(r.Ignored) + len(r.Warnings),
		Errors:   len(r.Errors),
		Warnings: len(r.Warnings),
		Ignored:  len(r.Ignored),
	}
	return r
}

func nonNil(advices []*types.Advice) []*types.Advice {
	if advices == nil {
		return []*types.Advice{}
	}
	return advices
}

// HasErrors returns true if the review found any errors.
func (r *ReviewResult) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if the review found any warnings.
func (r *ReviewResult) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if the review found no errors and no warnings.
// Ignored findings do not count.
func (r *ReviewResult) IsClean() bool {
	return !r.HasErrors() && !r.HasWarnings()
}

// Passed reports whether the migration is accepted. Warnings fail it only
// when failOnWarning is set.
func (r *ReviewResult) Passed(failOnWarning bool) bool {
	if r.HasErrors() {
		return false
	}
	return !failOnWarning || !r.HasWarnings()
}

// String returns a human-readable summary of the review.
func (r *ReviewResult) String() string {
	if r.IsClean() && r.Summary.Ignored == 0 {
		return "Review Results: no findings"
	}
	return fmt.Sprintf("Review Results: %d total (%d errors, %d warnings, %d ignored)",
		r.Summary.Total, r.Summary.Errors, r.Summary.Warnings, r.Summary.Ignored)
}

// Advices returns every finding: errors first, then warnings, then ignored.
func (r *ReviewResult) Advices() []*types.Advice {
	all := make([]*types.Advice, 0, r.Summary.Total)
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	all = append(all, r.Ignored...)
	return all
}

// FilterByStatus returns the findings routed to the given bucket.
//
// Example:
//
//	errors := result.FilterByStatus(types.Advice_ERROR)
func (r *ReviewResult) FilterByStatus(status types.Advice_Status) []*types.Advice {
	switch status {
	case types.Advice_ERROR:
		return r.Errors
	case types.Advice_WARNING:
		return r.Warnings
	case types.Advice_IGNORED:
		return r.Ignored
	default:
		return []*types.Advice{}
	}
}

// FilterByCode returns the findings of a specific rule.
//
// Example:
//
//	notNull := result.FilterByCode("NOT_NULL")
func (r *ReviewResult) FilterByCode(code string) []*types.Advice {
	var filtered []*types.Advice
	for _, advice := range r.Advices() {
		if advice.Code == code {
			filtered = append(filtered, advice)
		}
	}
	return filtered
}
