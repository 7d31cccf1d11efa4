package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a script in the terminal",
	Long: `Steps the script every frame and draws it on a terminal canvas.
The last build error and the latest Log lines are shown under the canvas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		opts := cli.RunOptions{Config: cfg}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Frames, _ = cmd.Flags().GetUint64("frames")

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		return cli.Execute(sm.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("watch", "w", false, "Rebuild whenever the script changes")
	runCmd.Flags().Bool("headless", false, "No canvas; print Log lines to stdout")
	runCmd.Flags().Int("fps", runner.DefaultFPS, "Frames per second")
	runCmd.Flags().Uint64("frames", 0, "Stop after this many frames (0 = run until interrupted)")
	runCmd.Flags().String("redis", "", "Stream Log lines to this Redis address")
	runCmd.Flags().Int("width", 0, "Canvas columns (0 = fit the terminal)")
	runCmd.Flags().Int("height", 0, "Canvas rows (0 = fit the terminal)")
	runCmd.Flags().String("log-file", "", "Write logs to this file")
}
