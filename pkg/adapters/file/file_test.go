package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/tendril/pkg/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {kind: Tick, name: t}\n"), 0o600))

	data, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "- {kind: Tick, name: t}\n", string(data))

	_, err = file.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	big := filepath.Join(dir, "big.yaml")
	require.NoError(t, os.WriteFile(big, []byte(strings.Repeat("#", file.MaxScriptSize+1)), 0o600))
	_, err = file.Load(big)
	assert.ErrorIs(t, err, file.ErrTooLarge)
}

type recorder struct {
	mu    sync.Mutex
	loads []string
}

func (r *recorder) reload(_ context.Context, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads = append(r.loads, string(data))
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loads...)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w, err := file.NewWatcher(path, file.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, rec.reload) }()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))

	require.Eventually(t, func() bool {
		loads := rec.snapshot()
		return len(loads) == 2 && loads[1] == "v2"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
