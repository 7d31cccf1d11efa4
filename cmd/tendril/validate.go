package main

import (
	"fmt"

	"github.com/aretw0/tendril/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [script]",
	Short: "Check a script without running it",
	Long:  `Parses and builds the script, then reports unconnected generators and feedback loops.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		if cfg.Script == "" {
			return cli.ErrNoScript
		}
		if err := cli.Validate(cfg.Script, cfg.MaxDepth, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Script is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
