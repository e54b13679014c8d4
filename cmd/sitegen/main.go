// Package main provides the sitegen command-line tool, which turns the talk and
// publication spreadsheets into site pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sitegen/internal/config"
	"sitegen/internal/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Generate talk and publication pages from CSV exports",
	Long: `Reads the talks and publications spreadsheets and writes one front matter
page per row into the site's collection directories.

Without a subcommand every enabled source is generated.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAll,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the defaults when none
// was given, and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.Logger {
	return logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
}
