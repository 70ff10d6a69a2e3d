package advisor

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/nsxbet/migration-linter/pkg/types"
)

// Definition is the static description of a rule.
type Definition struct {
	Code    string                   `json:"code"    yaml:"code"`
	Level   types.SQLReviewRuleLevel `json:"level"   yaml:"level"`
	Mode    types.RuleMode           `json:"mode"    yaml:"mode"`
	Message string                   `json:"message" yaml:"message"`
}

// Describe returns the definition itself so that embedding it satisfies Rule.
func (d Definition) Describe() Definition {
	return d
}

// Validate reports a configuration error for a definition with missing or invalid fields.
func (d Definition) Validate() error {
	if d.Code == "" {
		return errors.Wrap(ErrConfiguration, "rule code is required")
	}
	switch d.Level {
	case types.SQLReviewRuleLevel_ERROR, types.SQLReviewRuleLevel_WARNING:
	default:
		return errors.Wrapf(ErrConfiguration, "rule %s: level must be ERROR or WARNING", d.Code)
	}
	switch d.Mode {
	case types.RuleMode_ONE_LINER, types.RuleMode_TRANSACTION:
	default:
		return errors.Wrapf(ErrConfiguration, "rule %s: mode must be one_liner or transaction", d.Code)
	}
	if d.Message == "" {
		return errors.Wrapf(ErrConfiguration, "rule %s: message is required", d.Code)
	}
	return nil
}

// Rule is a single detector. Evaluate receives one statement for one-liner
// rules and the whole statement group for transaction rules. It must be a pure
// function of its input and return false when the rule does not apply.
type Rule interface {
	Describe() Definition
	Evaluate(statements []string) bool
}

// PatternRule fires when any statement matches Match and does not match Unless.
type PatternRule struct {
	Definition
	Match  *regexp.Regexp
	Unless *regexp.Regexp
}

var _ Rule = (*PatternRule)(nil)

// NewPatternRule compiles the patterns once. unless may be empty.
func NewPatternRule(def Definition, match, unless string) (*PatternRule, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if match == "" {
		return nil, errors.Wrapf(ErrConfiguration, "rule %s: pattern is required", def.Code)
	}
	matchRe, err := regexp.Compile(match)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "rule %s: invalid pattern %q: %v", def.Code, match, err)
	}
	rule := &PatternRule{Definition: def, Match: matchRe}
	if unless != "" {
		unlessRe, err := regexp.Compile(unless)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "rule %s: invalid unless pattern %q: %v", def.Code, unless, err)
		}
		rule.Unless = unlessRe
	}
	return rule, nil
}

// MustPatternRule is NewPatternRule for built-in rules; it panics on a bad definition.
func MustPatternRule(def Definition, match, unless string) *PatternRule {
	rule, err := NewPatternRule(def, match, unless)
	if err != nil {
		panic(err)
	}
	return rule
}

// Evaluate implements Rule.
func (r *PatternRule) Evaluate(statements []string) bool {
	for _, stmt := range statements {
		if r.Matches(stmt) {
			return true
		}
	}
	return false
}

// Matches reports whether a single statement triggers the rule.
func (r *PatternRule) Matches(statement string) bool {
	if !r.Match.MatchString(statement) {
		return false
	}
	return r.Unless == nil || !r.Unless.MatchString(statement)
}
