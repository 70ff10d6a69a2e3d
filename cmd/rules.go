package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nsxbet/migration-linter/pkg/advisor"
	"github.com/nsxbet/migration-linter/pkg/config"
	"github.com/nsxbet/migration-linter/pkg/reviewer"
	"github.com/nsxbet/migration-linter/pkg/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules of a database engine",
	Long: `List the rules applied to migrations of a database engine, in evaluation
order, including custom rules from the config file. Without --engine the
rules of every supported engine are listed.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringP("engine", "e", "", "database engine (postgresql, mysql, sqlite)")
	rulesCmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
}

func runRules(cmd *cobra.Command, args []string) error {
	engineKey, err := cmd.Flags().GetString("engine")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	engines := types.Engines
	if engineKey != "" {
		engine, err := types.ParseEngine(engineKey)
		if err != nil {
			return errors.Wrap(advisor.ErrConfiguration, err.Error())
		}
		engines = []types.Engine{engine}
	}

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	var schema []config.SchemaRule
	for _, engine := range engines {
		r, err := reviewer.New(engine)
		if err != nil {
			return err
		}
		if err := r.WithConfigObject(cfg); err != nil {
			return err
		}
		schema = append(schema, config.BuildSchema(r.Profile())...)
	}

	if format == "table" {
		writeRuleTable(cmd.OutOrStdout(), schema)
		return nil
	}
	return config.WriteSchema(cmd.OutOrStdout(), schema, format)
}

func writeRuleTable(w io.Writer, schema []config.SchemaRule) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true

	header := color.New(color.Bold)
	table.AddRow(header.Sprint("ENGINE"), header.Sprint("CODE"), header.Sprint("LEVEL"),
		header.Sprint("MODE"), header.Sprint("MESSAGE"))
	for _, rule := range schema {
		table.AddRow(rule.Engine.Key(), rule.Code, rule.Level, rule.Mode, rule.Message)
	}
	fmt.Fprintln(w, table)
}
