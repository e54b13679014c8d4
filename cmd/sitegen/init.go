package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitegen/internal/config"
)

const defaultConfigFile = "sitegen.yaml"

var errConfigExists = errors.New("config file already exists")

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Writes the default configuration to path (sitegen.yaml when omitted).
A path ending in .toml is written as TOML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigFile
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
		}

		if err := config.Default().SaveConfig(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
