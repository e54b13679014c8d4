package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitegen/internal/config"
	"sitegen/internal/models"
	"sitegen/internal/pipeline"
	"sitegen/internal/report"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate every enabled collection",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

var talksCmd = &cobra.Command{
	Use:     "talks",
	Aliases: []string{"talk"},
	Short:   "Generate talk pages",
	Args:    cobra.NoArgs,
	RunE:    runKind(models.KindTalk),
}

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"publication", "pubs"},
	Short:   "Generate publication pages",
	Args:    cobra.NoArgs,
	RunE:    runKind(models.KindPublication),
}

func init() {
	rootCmd.AddCommand(allCmd, talksCmd, publicationsCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return generate(cmd, cfg, cfg.EnabledKinds()...)
}

// runKind generates kind even when its source is disabled in the config.
func runKind(kind models.Kind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return generate(cmd, cfg, kind)
	}
}

// generate runs each kind in turn. A failing kind does not stop the next one;
// an interrupt does.
func generate(cmd *cobra.Command, cfg *config.Config, kinds ...models.Kind) error {
	log := newLogger(cmd, cfg)
	log.Debug("Loaded configuration", "config", cfg.String())

	out := cmd.OutOrStdout()

	var errs []error

	for _, kind := range kinds {
		g, err := pipeline.NewGenerator(kind, cfg, log)
		if err != nil {
			return err
		}

		result, runErr := g.Run(cmd.Context())

		if len(result.Entries) > 0 {
			fmt.Fprint(out, report.Table(result))
		}

		fmt.Fprintln(out, report.Summary(result))

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				return runErr
			}

			errs = append(errs, fmt.Errorf("%s: %w", kind.Collection(), runErr))
		}
	}

	return errors.Join(errs...)
}
