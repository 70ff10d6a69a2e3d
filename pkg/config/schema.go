package config

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// SchemaRule describes one rule of a vendor profile for documentation and tooling.
type SchemaRule struct {
	Code    string                   `yaml:"code"    json:"code"`
	Engine  types.Engine             `yaml:"engine"  json:"engine"`
	Level   types.SQLReviewRuleLevel `yaml:"level"   json:"level"`
	Mode    types.RuleMode           `yaml:"mode"    json:"mode"`
	Message string                   `yaml:"message" json:"message"`
}

// BuildSchema lists the rules of a profile in evaluation order.
func BuildSchema(profile *advisor.Profile) []SchemaRule {
	rules := profile.Rules()
	schema := make([]SchemaRule, 0, len(rules))
	for _, rule := range rules {
		def := rule.Describe()
		schema = append(schema, SchemaRule{
			Code:    def.Code,
			Engine:  profile.Engine(),
			Level:   def.Level,
			Mode:    def.Mode,
			Message: def.Message,
		})
	}
	return schema
}

// WriteSchema encodes schema rules as "yaml" or "json".
func WriteSchema(w io.Writer, rules []SchemaRule, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(rules), "failed to encode rule schema")
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(rules); err != nil {
			return errors.Wrap(err, "failed to encode rule schema")
		}
		return errors.Wrap(encoder.Close(), "failed to encode rule schema")
	default:
		return errors.Errorf("unsupported schema format %q", format)
	}
}
