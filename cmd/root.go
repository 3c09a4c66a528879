package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hurou927/uml-ddl/internal/config"
	"github.com/hurou927/uml-ddl/internal/convert"
	"github.com/hurou927/uml-ddl/internal/logging"
)

var (
	cfgPath   string
	envFile   string
	logLevel  string
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "uml-ddl",
	Short: "Generate MySQL DDL from PlantUML class diagrams",
	Long: `uml-ddl reads a PlantUML class diagram describing tables, columns and
REF(Table.column) references and turns it into CREATE TABLE statements with
primary keys, auto-increment columns and foreign keys.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(logLevel, logFormat); err != nil {
			return err
		}

		if err := godotenv.Load(envFile); err != nil {
			if cmd.Flags().Changed("env-file") {
				return fmt.Errorf("loading env file: %w", err)
			}
			logging.Log.Debugf("no env file at %s, using OS environment", envFile)
		}

		if cfgPath == "" {
			cfg = config.Default()
			return nil
		}
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with connection variables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.WithError(err).Error("uml-ddl failed")
		os.Exit(1)
	}
}

// diagramPath returns the diagram given on the command line, or the
// configured input.
func diagramPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input != "" {
		return cfg.Input, nil
	}
	return "", errors.New("a diagram path is required (argument or input in config)")
}

// convertOptions merges command line switches over the config file.
func convertOptions(strict, notNull, quote, guard bool) convert.Options {
	return convert.Options{
		Strict:           cfg.Strict || strict,
		NotNull:          cfg.RenderNotNull || notNull,
		QuoteIdentifiers: cfg.QuoteIdentifiers || quote,
		FKChecksGuard:    cfg.FKChecksGuard || guard,
	}
}
