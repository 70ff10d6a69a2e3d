package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SQLReviewRuleLevel represents the severity level of a rule
type SQLReviewRuleLevel int32

const (
	SQLReviewRuleLevel_LEVEL_UNSPECIFIED SQLReviewRuleLevel = 0
	SQLReviewRuleLevel_ERROR             SQLReviewRuleLevel = 1
	SQLReviewRuleLevel_WARNING           SQLReviewRuleLevel = 2
)

func (l SQLReviewRuleLevel) String() string {
	switch l {
	case SQLReviewRuleLevel_ERROR:
		return "ERROR"
	case SQLReviewRuleLevel_WARNING:
		return "WARNING"
	default:
		return "LEVEL_UNSPECIFIED"
	}
}

// ParseRuleLevel converts "error"/"warning" (any case) to a level.
func ParseRuleLevel(s string) (SQLReviewRuleLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SQLReviewRuleLevel_ERROR, nil
	case "WARNING":
		return SQLReviewRuleLevel_WARNING, nil
	default:
		return SQLReviewRuleLevel_LEVEL_UNSPECIFIED, fmt.Errorf("invalid rule level %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for SQLReviewRuleLevel
func (l *SQLReviewRuleLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	level, err := ParseRuleLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for SQLReviewRuleLevel
func (l *SQLReviewRuleLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRuleLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// MarshalJSON implements json.Marshaler for SQLReviewRuleLevel
func (l SQLReviewRuleLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// MarshalYAML implements yaml.Marshaler for SQLReviewRuleLevel
func (l SQLReviewRuleLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// RuleMode tells the engine what a rule predicate receives.
type RuleMode int32

const (
	RuleMode_MODE_UNSPECIFIED RuleMode = 0
	// RuleMode_ONE_LINER rules run once per statement.
	RuleMode_ONE_LINER RuleMode = 1
	// RuleMode_TRANSACTION rules run once per statement group.
	RuleMode_TRANSACTION RuleMode = 2
)

func (m RuleMode) String() string {
	switch m {
	case RuleMode_ONE_LINER:
		return "one_liner"
	case RuleMode_TRANSACTION:
		return "transaction"
	default:
		return "MODE_UNSPECIFIED"
	}
}

// ParseRuleMode accepts "one_liner", "one-liner" and "transaction".
func ParseRuleMode(s string) (RuleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one_liner", "one-liner", "oneliner":
		return RuleMode_ONE_LINER, nil
	case "transaction":
		return RuleMode_TRANSACTION, nil
	default:
		return RuleMode_MODE_UNSPECIFIED, fmt.Errorf("invalid rule mode %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for RuleMode
func (m *RuleMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := ParseRuleMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for RuleMode
func (m *RuleMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseRuleMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalJSON implements json.Marshaler for RuleMode
func (m RuleMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// MarshalYAML implements yaml.Marshaler for RuleMode
func (m RuleMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Advice_Status represents the bucket an advice was routed to
type Advice_Status int32

const (
	Advice_STATUS_UNSPECIFIED Advice_Status = 0
	Advice_IGNORED            Advice_Status = 1
	Advice_WARNING            Advice_Status = 2
	Advice_ERROR              Advice_Status = 3
)

func (s Advice_Status) String() string {
	switch s {
	case Advice_IGNORED:
		return "IGNORED"
	case Advice_WARNING:
		return "WARNING"
	case Advice_ERROR:
		return "ERROR"
	default:
		return "STATUS_UNSPECIFIED"
	}
}

// MarshalJSON implements json.Marshaler for Advice_Status
func (s Advice_Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML implements yaml.Marshaler for Advice_Status
func (s Advice_Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Advice is a single finding produced by a rule.
type Advice struct {
	Status  Advice_Status      `json:"status"  yaml:"status"`
	Level   SQLReviewRuleLevel `json:"level"   yaml:"level"`
	Code    string             `json:"code"    yaml:"code"`
	Title   string             `json:"title"   yaml:"title"`
	Content string             `json:"content" yaml:"content"`
	// Statements holds the statement for one-liner rules, the whole group otherwise.
	Statements     []string `json:"statements"     yaml:"statements"`
	GroupIndex     int      `json:"groupIndex"     yaml:"groupIndex"`
	StatementIndex int      `json:"statementIndex" yaml:"statementIndex"`
	File           string   `json:"file,omitempty" yaml:"file,omitempty"`
}
