package advisor

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/nsxbet/migration-linter/pkg/types"
)

// ErrConfiguration marks failures that must abort a run before any analysis:
// unknown vendors, malformed rule definitions, unknown rule codes.
var ErrConfiguration = errors.New("configuration error")

// Profile is the ordered, immutable rule set of one database engine.
type Profile struct {
	engine types.Engine
	rules  []Rule
	byCode map[string]Rule
}

// NewProfile validates every rule and builds a profile. Codes must be unique.
func NewProfile(engine types.Engine, rules ...Rule) (*Profile, error) {
	if engine == types.Engine_ENGINE_UNSPECIFIED {
		return nil, errors.Wrap(ErrConfiguration, "profile engine is unspecified")
	}
	p := &Profile{
		engine: engine,
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[string]Rule, len(rules)),
	}
	for i, rule := range rules {
		if rule == nil {
			return nil, errors.Wrapf(ErrConfiguration, "%s profile: rule #%d is nil", engine, i)
		}
		def := rule.Describe()
		if err := def.Validate(); err != nil {
			return nil, errors.Wrapf(err, "%s profile", engine)
		}
		if _, dup := p.byCode[def.Code]; dup {
			return nil, errors.Wrapf(ErrConfiguration, "%s profile: duplicate rule code %s", engine, def.Code)
		}
		p.byCode[def.Code] = rule
		p.rules = append(p.rules, rule)
	}
	return p, nil
}

// MustNewProfile is NewProfile for built-in profiles.
func MustNewProfile(engine types.Engine, rules ...Rule) *Profile {
	p, err := NewProfile(engine, rules...)
	if err != nil {
		panic(err)
	}
	return p
}

// Engine returns the engine the profile is bound to.
func (p *Profile) Engine() types.Engine {
	return p.engine
}

// Rules returns the rules in evaluation order.
func (p *Profile) Rules() []Rule {
	rules := make([]Rule, len(p.rules))
	copy(rules, p.rules)
	return rules
}

// Rule looks a rule up by code.
func (p *Profile) Rule(code string) (Rule, bool) {
	rule, ok := p.byCode[code]
	return rule, ok
}

// Extend returns a new profile with the extra rules appended.
func (p *Profile) Extend(rules ...Rule) (*Profile, error) {
	if len(rules) == 0 {
		return p, nil
	}
	return NewProfile(p.engine, append(p.Rules(), rules...)...)
}

// Override replaces rules of base that share a code with an override and
// appends the remaining overrides, keeping base order.
func Override(base []Rule, overrides ...Rule) []Rule {
	index := make(map[string]int, len(base))
	result := make([]Rule, len(base))
	copy(result, base)
	for i, rule := range result {
		index[rule.Describe().Code] = i
	}
	for _, rule := range overrides {
		if i, ok := index[rule.Describe().Code]; ok {
			result[i] = rule
			continue
		}
		index[rule.Describe().Code] = len(result)
		result = append(result, rule)
	}
	return result
}

// Registry maps engines to their profiles. It is built once at startup and
// passed explicitly to whoever needs a profile.
type Registry struct {
	profiles map[types.Engine]*Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[types.Engine]*Profile)}
}

// Register makes a profile available for its engine.
// If Register is called twice for the same engine or if profile is nil, it panics.
func (r *Registry) Register(profile *Profile) {
	if profile == nil {
		panic("advisor: Register profile is nil")
	}
	if _, dup := r.profiles[profile.engine]; dup {
		panic(fmt.Sprintf("advisor: Register called twice for engine %v", profile.engine))
	}
	r.profiles[profile.engine] = profile
}

// Profile returns the profile of an engine. Unknown engines are a configuration error.
func (r *Registry) Profile(engine types.Engine) (*Profile, error) {
	p, ok := r.profiles[engine]
	if !ok {
		return nil, errors.Wrapf(ErrConfiguration, "no rule profile registered for engine %v", engine)
	}
	return p, nil
}

// Engines returns the registered engines in enum order.
func (r *Registry) Engines() []types.Engine {
	engines := make([]types.Engine, 0, len(r.profiles))
	for engine := range r.profiles {
		engines = append(engines, engine)
	}
	sort.Slice(engines, func(i, j int) bool { return engines[i] < engines[j] })
	return engines
}

// KnownCode reports whether any registered profile defines the code.
func (r *Registry) KnownCode(code string) bool {
	for _, p := range r.profiles {
		if _, ok := p.byCode[code]; ok {
			return true
		}
	}
	return false
}
