package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "type.css")
	require.NoError(t, os.WriteFile(file, []byte(":root {}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Config{
			Paths:    []string{dir},
			Debounce: 50 * time.Millisecond,
			Filter:   func(path string) bool { return strings.HasSuffix(path, ".css") },
		}, func(_ context.Context, changed []string) error {
			calls <- changed
			return nil
		})
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte(":root { color: red; }"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	select {
	case changed := <-calls:
		assert.Equal(t, []string{file}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMissingPath(t *testing.T) {
	err := Run(context.Background(), Config{
		Paths: []string{filepath.Join(t.TempDir(), "missing")},
	}, func(context.Context, []string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}
