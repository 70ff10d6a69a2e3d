package reviewer

import (
	"github.com/nsxbet/migration-linter/pkg/advisor"
)

// ReviewOption is a functional option for customizing review behavior.
type ReviewOption func(*reviewOptions)

// reviewOptions holds optional configuration for a review operation.
type reviewOptions struct {
	ignore           []string
	warningsAsErrors []string
	allWarnings      bool
	deduplicate      bool
	file             string
	splitMode        SplitMode
}

// WithIgnore moves findings of the given rule codes to the ignored bucket.
//
// Example:
//
//	result, err := r.Review(ctx, statements, WithIgnore("CREATE_INDEX"))
func WithIgnore(codes ...string) ReviewOption {
	return func(opts *reviewOptions) {
		opts.ignore = append(opts.ignore, codes...)
	}
}

// WithWarningsAsErrors reports warnings of the given codes as errors.
// Called without codes it promotes every warning.
func WithWarningsAsErrors(codes ...string) ReviewOption {
	return func(opts *reviewOptions) {
		if len(codes) == 0 {
			opts.allWarnings = true
			return
		}
		opts.warningsAsErrors = append(opts.warningsAsErrors, codes...)
	}
}

// WithDeduplicate keeps only the first finding of each rule per statement group.
func WithDeduplicate() ReviewOption {
	return func(opts *reviewOptions) {
		opts.deduplicate = true
	}
}

// WithFile tags every finding with the migration file it comes from.
func WithFile(name string) ReviewOption {
	return func(opts *reviewOptions) {
		opts.file = name
	}
}

// WithSplitMode selects how ReviewSQL cuts a script into statements.
func WithSplitMode(mode SplitMode) ReviewOption {
	return func(opts *reviewOptions) {
		opts.splitMode = mode
	}
}

func (o *reviewOptions) analyseOptions() []advisor.AnalyseOption {
	var opts []advisor.AnalyseOption
	if len(o.ignore) > 0 {
		opts = append(opts, advisor.WithIgnore(o.ignore...))
	}
	if o.allWarnings {
		opts = append(opts, advisor.WithWarningsAsErrors())
	} else if len(o.warningsAsErrors) > 0 {
		opts = append(opts, advisor.WithWarningsAsErrors(o.warningsAsErrors...))
	}
	if o.deduplicate {
		opts = append(opts, advisor.WithDeduplicate())
	}
	return opts
}
