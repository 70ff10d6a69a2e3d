package advisor

import (
	"log/slog"

	"github.com/nsxbet/migration-linter/pkg/types"
)

// Result holds the findings of one analysis run, partitioned by bucket.
type Result struct {
	Errors   []*types.Advice
	Ignored  []*types.Advice
	Warnings []*types.Advice
}

// AnalyseOption customizes how findings are routed.
type AnalyseOption func(*analyseOptions)

type analyseOptions struct {
	ignore           map[string]bool
	warningsAsErrors map[string]bool
	allWarnings      bool
	deduplicate      bool
}

// WithIgnore routes findings of the given codes to the ignored bucket.
func WithIgnore(codes ...string) AnalyseOption {
	return func(o *analyseOptions) {
		for _, code := range codes {
			o.ignore[code] = true
		}
	}
}

// WithWarningsAsErrors promotes warnings of the given codes to errors.
// Without codes every warning is promoted.
func WithWarningsAsErrors(codes ...string) AnalyseOption {
	return func(o *analyseOptions) {
		if len(codes) == 0 {
			o.allWarnings = true
			return
		}
		for _, code := range codes {
			o.warningsAsErrors[code] = true
		}
	}
}

// WithDeduplicate keeps only the first finding of each code within a group.
func WithDeduplicate() AnalyseOption {
	return func(o *analyseOptions) {
		o.deduplicate = true
	}
}

// Analyse runs every rule of the profile over the statements.
//
// Transaction rules are evaluated once per statement group, one-liner rules
// once per statement regardless of grouping. Rules never short-circuit each
// other. The result only depends on the profile, the statements and the options.
func Analyse(profile *Profile, statements []string, opts ...AnalyseOption) *Result {
	o := &analyseOptions{
		ignore:           make(map[string]bool),
		warningsAsErrors: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}

	result := &Result{}
	groups := GroupStatements(profile.Engine(), statements)
	seen := make(map[int]map[string]bool, len(groups))

	emit := func(def Definition, group StatementGroup, stmtIndex int, stmts []string) {
		if o.deduplicate {
			if seen[group.Index] == nil {
				seen[group.Index] = make(map[string]bool)
			}
			if seen[group.Index][def.Code] {
				return
			}
			seen[group.Index][def.Code] = true
		}
		advice := &types.Advice{
			Level:          def.Level,
			Code:           def.Code,
			Title:          def.Code,
			Content:        def.Message,
			Statements:     stmts,
			GroupIndex:     group.Index,
			StatementIndex: stmtIndex,
		}
		switch {
		case o.ignore[def.Code]:
			advice.Status = types.Advice_IGNORED
			result.Ignored = append(result.Ignored, advice)
		case def.Level == types.SQLReviewRuleLevel_ERROR,
			o.allWarnings, o.warningsAsErrors[def.Code]:
			advice.Status = types.Advice_ERROR
			result.Errors = append(result.Errors, advice)
		default:
			advice.Status = types.Advice_WARNING
			result.Warnings = append(result.Warnings, advice)
		}
	}

	for _, rule := range profile.rules {
		def := rule.Describe()
		for _, group := range groups {
			switch def.Mode {
			case types.RuleMode_TRANSACTION:
				if evaluate(rule, group.Statements) {
					emit(def, group, -1, group.Statements)
				}
			case types.RuleMode_ONE_LINER:
				for i, stmt := range group.Statements {
					single := []string{stmt}
					if evaluate(rule, single) {
						emit(def, group, group.Offset+i, single)
					}
				}
			}
		}
	}

	slog.Debug("analysis finished",
		"engine", profile.Engine(),
		"statements", len(statements),
		"errors", len(result.Errors),
		"ignored", len(result.Ignored),
		"warnings", len(result.Warnings),
	)
	return result
}

// evaluate runs a predicate, treating a panic as "rule does not apply".
func evaluate(rule Rule, statements []string) (hit bool) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			slog.Error("rule evaluation PANIC RECOVER", "code", rule.Describe().Code, "error", panicErr)
			hit = false
		}
	}()
	return rule.Evaluate(statements)
}
