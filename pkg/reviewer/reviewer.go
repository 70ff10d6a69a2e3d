// Package reviewer provides a high-level API for linting database migrations.
//
// # Quick Start
//
//	r, err := reviewer.New(types.Engine_POSTGRES)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.ReviewSQL(ctx, migrationSQL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result)
//	for _, advice := range result.Errors {
//	    fmt.Printf("[%s] %s\n", advice.Code, advice.Content)
//	}
//
// # Using a Configuration File
//
//	r, _ := reviewer.New(types.Engine_MYSQL)
//	if err := r.WithConfig(".migration-linter.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// Configuration problems (unknown engine, unknown rule code, malformed custom
// rule) are reported as errors wrapping advisor.ErrConfiguration before any
// statement is analysed.
package reviewer

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/config"
	"github.com/nsxbet/migration-linter/pkg/rules"
	"github.com/nsxbet/migration-linter/pkg/types"
)

// Reviewer lints migrations of one database engine.
//
// A configured Reviewer is safe for concurrent use by multiple goroutines;
// WithConfig and WithConfigObject must not run concurrently with Review.
type Reviewer struct {
	engine   types.Engine
	registry *advisor.Registry
	profile  *advisor.Profile
	config   *config.Config
	// custom rule codes of every engine in the configuration
	customCodes map[string]bool
}

// New creates a Reviewer for the engine with the built-in rule profiles.
func New(engine types.Engine) (*Reviewer, error) {
	return NewWithRegistry(rules.NewDefaultRegistry(), engine)
}

// NewFromKey creates a Reviewer from a vendor key such as "postgresql", "mysql" or "sqlite".
func NewFromKey(key string) (*Reviewer, error) {
	engine, err := types.ParseEngine(key)
	if err != nil {
		return nil, errors.Wrap(advisor.ErrConfiguration, err.Error())
	}
	return New(engine)
}

// NewWithRegistry creates a Reviewer backed by a caller supplied registry.
func NewWithRegistry(registry *advisor.Registry, engine types.Engine) (*Reviewer, error) {
	profile, err := registry.Profile(engine)
	if err != nil {
		return nil, err
	}
	return &Reviewer{
		engine:   engine,
		registry: registry,
		profile:  profile,
		config:   config.DefaultConfig(),
	}, nil
}

// Engine returns the engine the Reviewer lints for.
func (r *Reviewer) Engine() types.Engine {
	return r.engine
}

// Profile returns the active rule profile, custom rules included.
func (r *Reviewer) Profile() *advisor.Profile {
	return r.profile
}

// WithConfig loads a YAML or JSON configuration file and applies it.
// This replaces the current configuration.
func (r *Reviewer) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to load config from %s", filename)
	}
	return r.WithConfigObject(cfg)
}

// WithConfigObject applies a configuration: custom rules for the engine are
// added to the profile and every referenced rule code is checked. On error
// the Reviewer keeps its previous configuration.
func (r *Reviewer) WithConfigObject(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	base, err := r.registry.Profile(r.engine)
	if err != nil {
		return err
	}
	custom, err := cfg.RulesForEngine(r.engine)
	if err != nil {
		return err
	}
	profile, err := base.Extend(custom...)
	if err != nil {
		return err
	}

	customCodes := make(map[string]bool, len(cfg.CustomRules))
	for _, rule := range cfg.CustomRules {
		customCodes[rule.Code] = true
	}
	for _, codes := range [][]string{cfg.Ignore, cfg.WarningsAsErrors} {
		for _, code := range codes {
			if !customCodes[code] && !r.registry.KnownCode(code) {
				return errors.Wrapf(advisor.ErrConfiguration, "unknown rule code %q", code)
			}
		}
	}

	slog.Debug("applied config",
		"engine", r.engine,
		"rules", len(profile.Rules()),
		"custom_rules", len(custom),
	)
	r.config = cfg
	r.profile = profile
	r.customCodes = customCodes
	return nil
}

// Review lints a migration given as an ordered list of statements.
//
// It returns an error only for configuration problems or a done context;
// rule failures never abort a review.
func (r *Reviewer) Review(ctx context.Context, statements []string, opts ...ReviewOption) (*ReviewResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reviewOpts := r.reviewOptions(opts)
	for _, codes := range [][]string{reviewOpts.ignore, reviewOpts.warningsAsErrors} {
		for _, code := range codes {
			if !r.knownCode(code) {
				return nil, errors.Wrapf(advisor.ErrConfiguration, "unknown rule code %q", code)
			}
		}
	}

	result := advisor.Analyse(r.profile, statements, reviewOpts.analyseOptions()...)
	if reviewOpts.file != "" {
		for _, bucket := range [][]*types.Advice{result.Errors, result.Ignored, result.Warnings} {
			for _, advice := range bucket {
				advice.File = reviewOpts.file
			}
		}
	}
	return newReviewResult(result), nil
}

// ReviewSQL splits a migration script into statements and reviews them.
func (r *Reviewer) ReviewSQL(ctx context.Context, sql string, opts ...ReviewOption) (*ReviewResult, error) {
	reviewOpts := r.reviewOptions(opts)
	statements, err := SplitStatements(r.engine, sql, reviewOpts.splitMode)
	if err != nil {
		return nil, err
	}
	return r.Review(ctx, statements, opts...)
}

// reviewOptions merges the configuration defaults with per-call options.
func (r *Reviewer) reviewOptions(opts []ReviewOption) *reviewOptions {
	reviewOpts := &reviewOptions{
		ignore:           append([]string(nil), r.config.Ignore...),
		warningsAsErrors: append([]string(nil), r.config.WarningsAsErrors...),
		allWarnings:      r.config.AllWarningsAsErrors,
		deduplicate:      r.config.Deduplicate,
		splitMode:        SplitParser,
	}
	for _, opt := range opts {
		opt(reviewOpts)
	}
	return reviewOpts
}

func (r *Reviewer) knownCode(code string) bool {
	if _, ok := r.profile.Rule(code); ok || r.customCodes[code] {
		return true
	}
	return r.registry.KnownCode(code)
}
