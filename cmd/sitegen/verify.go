package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitegen/internal/models"
	"sitegen/internal/validator"
)

var errInvalidDocuments = errors.New("invalid documents")

var verifyKind string

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check generated pages",
	Long: `Checks every .md file in dir for a well-formed front matter block.
Without dir the configured output directory of --kind is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyKind, "kind", "k", string(models.KindTalk), "document kind: talk or publication")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseKind(verifyKind)
	if err != nil {
		return err
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		cfg, cfgErr := loadConfig()
		if cfgErr != nil {
			return cfgErr
		}

		dir = cfg.Source(kind).OutputDir
	}

	results, err := validator.NewDocumentValidator().ValidateDir(dir, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0

	for _, fr := range results {
		if fr.Result.IsValid {
			if len(fr.Result.Warnings) > 0 {
				fmt.Fprintf(out, "⚠️  %s\n", fr.Path)
				fr.Result.PrintWarnings(out)
			}

			continue
		}

		invalid++

		fmt.Fprintf(out, "❌ %s: %s\n", fr.Path, fr.Result)
		fr.Result.PrintErrors(out)
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d in %s", errInvalidDocuments, invalid, len(results), dir)
	}

	fmt.Fprintf(out, "✅ %d %s documents valid\n", len(results), kind)

	return nil
}
