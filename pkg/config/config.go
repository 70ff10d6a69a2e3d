package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".migration-linter.yaml"

// Config represents the linter configuration file.
type Config struct {
	// Engine is the default engine; a command line flag overrides it.
	Engine              types.Engine  `yaml:"engine,omitempty"              json:"engine,omitempty"`
	Ignore              []string      `yaml:"ignore,omitempty"              json:"ignore,omitempty"`
	WarningsAsErrors    []string      `yaml:"warningsAsErrors,omitempty"    json:"warningsAsErrors,omitempty"`
	AllWarningsAsErrors bool          `yaml:"allWarningsAsErrors,omitempty" json:"allWarningsAsErrors,omitempty"`
	Deduplicate         bool          `yaml:"deduplicate,omitempty"         json:"deduplicate,omitempty"`
	CustomRules         []*CustomRule `yaml:"customRules,omitempty"         json:"customRules,omitempty"`
}

// CustomRule is a pattern rule declared in the configuration file.
// Engine, Level and Mode are decoded with the enum unmarshalers of pkg/types,
// so an unknown key fails while the file is parsed.
type CustomRule struct {
	Code string `yaml:"code"             json:"code"`
	// Engine restricts the rule to one engine; unspecified means every engine.
	Engine  types.Engine             `yaml:"engine,omitempty" json:"engine,omitempty"`
	Level   types.SQLReviewRuleLevel `yaml:"level"            json:"level"`
	Mode    types.RuleMode           `yaml:"mode"             json:"mode"`
	Message string                   `yaml:"message"          json:"message"`
	Pattern string                   `yaml:"pattern"          json:"pattern"`
	Unless  string                   `yaml:"unless,omitempty" json:"unless,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	var config Config

	// Try YAML first, then JSON
	if yamlErr := yaml.Unmarshal(data, &config); yamlErr != nil {
		slog.Debug("YAML unmarshal failed", "error", yamlErr)
		config = Config{}
		if err := json.Unmarshal(data, &config); err != nil {
			slog.Debug("JSON unmarshal failed", "error", err)
			return nil, errors.Wrapf(advisor.ErrConfiguration, "failed to parse config file %s: %v", filename, yamlErr)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", filename)
	}

	slog.Debug("Loaded config",
		"engine", config.Engine,
		"ignore", len(config.Ignore),
		"custom_rules", len(config.CustomRules),
	)
	return &config, nil
}

// DefaultConfig returns an empty configuration: built-in rules only, nothing ignored.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks the engine and every custom rule.
func (c *Config) Validate() error {
	if !knownEngine(c.Engine) {
		return errors.Wrapf(advisor.ErrConfiguration, "unsupported database engine %v", c.Engine)
	}
	for i, rule := range c.CustomRules {
		if rule == nil {
			return errors.Wrapf(advisor.ErrConfiguration, "custom rule #%d is empty", i)
		}
		if _, err := rule.Build(); err != nil {
			return err
		}
		if !knownEngine(rule.Engine) {
			return errors.Wrapf(advisor.ErrConfiguration, "custom rule %s: unsupported database engine %v", rule.Code, rule.Engine)
		}
	}
	return nil
}

// knownEngine accepts the unspecified engine and every supported one.
func knownEngine(engine types.Engine) bool {
	return engine == types.Engine_ENGINE_UNSPECIFIED || engine.Key() != ""
}

// RulesForEngine builds the custom rules that apply to the engine.
func (c *Config) RulesForEngine(engine types.Engine) ([]advisor.Rule, error) {
	var rules []advisor.Rule
	for _, custom := range c.CustomRules {
		if !custom.AppliesTo(engine) {
			continue
		}
		rule, err := custom.Build()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// AppliesTo reports whether the rule targets the engine.
func (r *CustomRule) AppliesTo(engine types.Engine) bool {
	return r.Engine == types.Engine_ENGINE_UNSPECIFIED || r.Engine == engine
}

// Build compiles the custom rule into a pattern rule. A missing level or mode
// is a configuration error.
func (r *CustomRule) Build() (advisor.Rule, error) {
	return advisor.NewPatternRule(advisor.Definition{
		Code:    r.Code,
		Level:   r.Level,
		Mode:    r.Mode,
		Message: r.Message,
	}, r.Pattern, r.Unless)
}
