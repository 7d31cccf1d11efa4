package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [script]",
	Short: "Run headless and expose the HTTP control API",
	Long: `Steps the script without a canvas and serves the control API:
GET /graph, GET /graph.mmd, POST /script, GET /error, GET /events (SSE) and GET /metrics.
The script is optional; one can be posted later.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		opts := cli.RunOptions{Config: cfg, Serve: true, Headless: true}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		if opts.Watch && cfg.Script == "" {
			return cli.ErrNoScript
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		return cli.Execute(sm.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Also rebuild whenever the script changes")
	serveCmd.Flags().Int("fps", runner.DefaultFPS, "Frames per second")
	serveCmd.Flags().String("redis", "", "Stream Log lines to this Redis address")
}
