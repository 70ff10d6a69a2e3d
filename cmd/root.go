package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/migration-linter/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "migration-linter",
	Short: "Detect backward incompatible database migrations",
	Long: `Migration Linter analyses the SQL of database migrations and reports
statements that break code still running against the previous schema,
such as dropped or renamed columns, new NOT NULL constraints and
blocking index builds.

It supports PostgreSQL, MySQL and SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		format, err := logger.ParseFormat(viper.GetString("log-format"))
		if err != nil {
			return err
		}
		logger.NewWithOptions(os.Stderr, level, format).SetDefault()
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "file", used)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.migration-linter.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig resolves the config file and environment variables.
// The file itself is parsed by pkg/config, viper only locates it.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".migration-linter")
	}

	viper.SetEnvPrefix("MIGRATION_LINTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; a broken one is reported by the command that loads it.
	_ = viper.ReadInConfig()
}
