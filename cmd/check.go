package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/config"
	"github.com/nsxbet/migration-linter/pkg/logger"
	"github.com/nsxbet/migration-linter/pkg/pgparser"
	"github.com/nsxbet/migration-linter/pkg/reviewer"
	"github.com/nsxbet/migration-linter/pkg/types"
)

const stdinName = "<stdin>"

var checkCmd = &cobra.Command{
	Use:   "check [flags] <migration.sql>...",
	Short: "Lint migration SQL files",
	Long: `Lint the SQL of one or more migrations. Each file is one migration and
is analysed on its own; use "-" to read a migration from stdin.

The command exits with a non-zero code when any migration has errors,
or warnings when --fail-on-warning is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags for check command
	checkCmd.Flags().StringP("engine", "e", "", "database engine (postgresql, mysql, sqlite)")
	checkCmd.Flags().StringSlice("ignore", nil, "rule codes to ignore")
	checkCmd.Flags().StringSlice("warnings-as-errors", nil, "rule codes whose warnings fail the migration")
	checkCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	checkCmd.Flags().String("split", string(reviewer.SplitParser), "statement splitting (parser, lines)")
	checkCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")
	checkCmd.Flags().Bool("dedupe", false, "report each rule once per statement group")
	checkCmd.Flags().Bool("validate", false, "reject PostgreSQL migrations that do not parse")

	// Bind flags to viper
	_ = viper.BindPFlag("engine", checkCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("ignore", checkCmd.Flags().Lookup("ignore"))
	_ = viper.BindPFlag("warnings-as-errors", checkCmd.Flags().Lookup("warnings-as-errors"))
	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("split", checkCmd.Flags().Lookup("split"))
	_ = viper.BindPFlag("fail-on-warning", checkCmd.Flags().Lookup("fail-on-warning"))
	_ = viper.BindPFlag("dedupe", checkCmd.Flags().Lookup("dedupe"))
	_ = viper.BindPFlag("validate", checkCmd.Flags().Lookup("validate"))
}

// fileReport is the review of one migration file.
type fileReport struct {
	File   string                 `json:"file"   yaml:"file"`
	Result *reviewer.ReviewResult `json:"result" yaml:"result"`
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	slog.Debug("starting check command", "args", args)

	format := viper.GetString("output")
	if !isOutputFormat(format) {
		return errors.Wrapf(advisor.ErrConfiguration, "unsupported output format %q", format)
	}

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	engineKey := viper.GetString("engine")
	if engineKey == "" {
		engineKey = cfg.Engine.Key()
	}
	if engineKey == "" {
		return errors.Wrap(advisor.ErrConfiguration, "no database engine: use --engine or set engine in the config file")
	}
	r, err := reviewer.NewFromKey(engineKey)
	if err != nil {
		return err
	}
	if err := r.WithConfigObject(cfg); err != nil {
		return err
	}

	opts, err := reviewOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	reports := iter.Map(args, func(file *string) *fileReport {
		return reviewFile(ctx, r, cmd.InOrStdin(), *file, opts)
	})
	for _, report := range reports {
		if report.err != nil {
			return report.err
		}
	}

	if err := writeReports(cmd.OutOrStdout(), reports, format); err != nil {
		return err
	}

	failOnWarning := viper.GetBool("fail-on-warning")
	for _, report := range reports {
		if !report.Result.Passed(failOnWarning) {
			slog.Debug("migration rejected", "file", report.File, "summary", report.Result.Summary)
			os.Exit(1)
		}
	}
	return nil
}

func loadConfiguration() (*config.Config, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		slog.Debug("no config file found, using defaults")
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "file", path, "custom_rules", len(cfg.CustomRules))
	return cfg, nil
}

func reviewOptions() ([]reviewer.ReviewOption, error) {
	split, err := reviewer.ParseSplitMode(viper.GetString("split"))
	if err != nil {
		return nil, err
	}
	opts := []reviewer.ReviewOption{reviewer.WithSplitMode(split)}

	if ignore := codeList("ignore"); len(ignore) > 0 {
		opts = append(opts, reviewer.WithIgnore(ignore...))
	}
	if promote := codeList("warnings-as-errors"); len(promote) > 0 {
		opts = append(opts, reviewer.WithWarningsAsErrors(promote...))
	}

	if viper.GetBool("dedupe") {
		opts = append(opts, reviewer.WithDeduplicate())
	}
	return opts, nil
}

// codeList reads a list of rule codes from a flag or from its environment
// variable, where codes are comma separated.
func codeList(key string) []string {
	var codes []string
	for _, value := range viper.GetStringSlice(key) {
		for _, code := range strings.Split(value, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func reviewFile(ctx context.Context, r *reviewer.Reviewer, stdin io.Reader, file string, opts []reviewer.ReviewOption) *fileReport {
	report := &fileReport{File: file}

	var content []byte
	var err error
	if file == "-" {
		report.File = stdinName
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(file)
	}
	if err != nil {
		report.err = errors.Wrapf(err, "failed to read migration %s", report.File)
		return report
	}

	if viper.GetBool("validate") && r.Engine() == types.Engine_POSTGRES {
		if err := pgparser.Validate(string(content)); err != nil {
			report.err = errors.Wrapf(err, "migration %s", report.File)
			return report
		}
	}

	opts = append(opts[:len(opts):len(opts)], reviewer.WithFile(report.File))
	report.Result, report.err = r.ReviewSQL(ctx, string(content), opts...)
	if report.err != nil {
		slog.Error("review failed", "file", report.File, logger.Error(report.err))
		return report
	}
	slog.Debug("reviewed migration", "file", report.File, "summary", report.Result.String())
	return report
}
