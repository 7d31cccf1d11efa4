package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the generator kinds and their ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.Kinds(cmd.OutOrStdout(), !plain)
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
	kindsCmd.Flags().Bool("plain", false, "Print raw markdown")
}
