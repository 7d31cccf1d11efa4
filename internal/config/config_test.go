package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
script: patch.yaml
fps: 30
grid: {width: 120, height: 60}
log: {level: debug, format: json}
redis: {addr: "localhost:6379", db: 2}
`))
	require.NoError(t, err)

	assert.Equal(t, "patch.yaml", cfg.Script)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 64, cfg.MaxDepth, "untouched fields keep their default")
	assert.Equal(t, 120, cfg.Grid.Width)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "tendril:log", cfg.Redis.Stream)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"fps too high":  "fps: 5000",
		"depth zero":    "max_depth: 0",
		"tiny grid":     "grid: {width: 1}",
		"log level":     "log: {level: loud}",
		"bad addr":      "http: {addr: nope}",
		"redis db":      "redis: {db: 99}",
		"unknown field": "colour: red",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_ErrorNamesField(t *testing.T) {
	_, err := Parse([]byte("fps: 0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.FPS")
	assert.Contains(t, err.Error(), "gte=1")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 24\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.FPS)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Chdir(dir)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
