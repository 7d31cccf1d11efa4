package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tendril/internal/config"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterScript = `
- {kind: Tick, name: counter, ports: {min: 0, max: 100, incr: 1, tick: 0}}
- {kind: Log, name: log}
- {from: counter.tick, to: log.value0}
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func headless(path string, frames uint64) (RunOptions, *bytes.Buffer, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Script = path
	cfg.FPS = 1000
	var stdout, stderr bytes.Buffer
	return RunOptions{
		Config:   cfg,
		Headless: true,
		Frames:   frames,
		Stdout:   &stdout,
		Stderr:   &stderr,
	}, &stdout, &stderr
}

func TestExecute_HeadlessPrintsDiagnostics(t *testing.T) {
	opts, stdout, _ := headless(writeScript(t, counterScript), 3)

	require.NoError(t, Execute(context.Background(), opts))
	assert.Equal(t, "log.value0 : 1\nlog.value0 : 2\nlog.value0 : 3\n", stdout.String())
}

func TestExecute_BuildErrorFailsFast(t *testing.T) {
	opts, _, _ := headless(writeScript(t, "- {kind: Nope, name: n}\n"), 3)

	err := Execute(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, domain.IsBuildError(err))
}

func TestExecute_NoScript(t *testing.T) {
	opts, _, _ := headless("", 1)
	assert.ErrorIs(t, Execute(context.Background(), opts), ErrNoScript)
}

func TestExecute_UnknownMCPTransport(t *testing.T) {
	opts, _, _ := headless(writeScript(t, counterScript), 0)
	opts.MCP = "pigeon"
	err := Execute(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown MCP transport")
}

func TestExecute_UnreachableRedisStopsBeforeFirstFrame(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts, stdout, _ := headless(writeScript(t, counterScript), 0)
	opts.Config.Redis.Addr = addr

	done := make(chan error, 1)
	go func() { done <- Execute(context.Background(), opts) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Execute kept running after the Redis ping failed")
	}
	assert.Empty(t, stdout.String(), "no frame runs when setup fails")
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	path := writeScript(t, counterScript+"- {kind: Trig, name: idle}\n")

	require.NoError(t, Validate(path, 64, &out))
	assert.Contains(t, out.String(), "4 statements, 3 generators, 1 edges")
	assert.Contains(t, out.String(), "warning: idle: Trig is not connected")
}

func TestGraph(t *testing.T) {
	var out bytes.Buffer
	path := writeScript(t, `
- {kind: Value, name: a}
- {kind: Value, name: b}
- {from: a.value, to: b.value}
- {from: b.value, to: a.value}
`)

	require.NoError(t, Graph(path, 64, &out))
	assert.True(t, strings.HasPrefix(out.String(), "graph LR\n"))
	assert.Contains(t, out.String(), "a")
}

func TestKinds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Kinds(&out, false))
	assert.Contains(t, out.String(), "| Tick |")
	assert.Contains(t, out.String(), "Beats / Beat")
}
