package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tendril.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("script: from-file.yaml\nfps: 30\n"), 0o600))

	cmd := runCmd
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--fps", "12", "--max-depth", "9"}))
	t.Cleanup(func() {
		_ = cmd.Flags().Set("fps", "60")
		_ = cmd.Flags().Set("max-depth", "0")
		_ = cmd.Flags().Set("config", "")
	})

	cfg, err := loadConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file.yaml", cfg.Script)
	assert.Equal(t, 12, cfg.FPS)
	assert.Equal(t, 9, cfg.MaxDepth)

	cfg, err = loadConfig(cmd, []string{"arg.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "arg.yaml", cfg.Script)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "tendril version "))
}
