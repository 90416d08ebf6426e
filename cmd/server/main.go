package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/config"
	"github.com/mandag122/WeeVora/internal/logging"
)

var Version = "dev"

var (
	configFile string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "weevora",
	Short: "WeeVora summer camp directory API",
	Long: `WeeVora serves the camp catalog read from the record store
(Airtable, Google Sheets or a YAML fixture) and keeps per-family
session planners.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		if configFile != "" {
			if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Fetch the catalog and report data-quality problems",
	Long: `audit reads the Camps and Registration_Options tables, maps them
the same way the API does and prints every diagnostic (slug collisions,
unparseable dates or prices, mismatched list lengths).`,
	RunE: runAudit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (or set CONFIG_FILE env)")

	auditCmd.Flags().StringVar(&auditFormat, "format", "text", "Output format: text or yaml")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Exit non-zero when any diagnostic is reported")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
