package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [script]",
	Short: "Export the wiring as a Mermaid diagram",
	Long:  `Builds the script and outputs a Mermaid diagram (graph LR) of its generators and wiring.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		if cfg.Script == "" {
			return cli.ErrNoScript
		}
		return cli.Graph(cfg.Script, cfg.MaxDepth, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
