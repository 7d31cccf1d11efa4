package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tendril/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tendril",
	Short: "Tendril is a live-coding dataflow engine",
	Long: `Tendril runs small generators (oscillators, math, drawing, keyboard gates,
beat sequencers) wired together by a YAML script, stepping the graph every frame.
Edit the script while it runs and the graph is rebuilt in place.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Project file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Times an update may lap a wiring cycle (default from config, 64)")
}

// loadConfig reads the project file and applies the flags the user set.
// A positional argument names the script.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if len(args) > 0 {
		cfg.Script = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if f := flags.Lookup("fps"); f != nil && f.Changed {
		cfg.FPS, _ = flags.GetInt("fps")
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.HTTP.Addr, _ = flags.GetString("addr")
	}
	if f := flags.Lookup("redis"); f != nil && f.Changed {
		cfg.Redis.Addr, _ = flags.GetString("redis")
	}
	if f := flags.Lookup("width"); f != nil && f.Changed {
		cfg.Grid.Width, _ = flags.GetInt("width")
	}
	if f := flags.Lookup("height"); f != nil && f.Changed {
		cfg.Grid.Height, _ = flags.GetInt("height")
	}
	if f := flags.Lookup("log-file"); f != nil && f.Changed {
		cfg.Log.File, _ = flags.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
