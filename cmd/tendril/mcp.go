package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [script]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Runs the engine headless as an MCP Server, so AI agents can inspect
the graph and replace the script while it runs.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		opts := cli.RunOptions{Config: cfg, Headless: true}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.MCP, _ = cmd.Flags().GetString("transport")
		opts.MCPPort, _ = cmd.Flags().GetInt("port")

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		return cli.Execute(sm.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", cli.MCPStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Int("fps", runner.DefaultFPS, "Frames per second")
}
