package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/repl/logging"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repls.yml")
	require.NoError(t, os.WriteFile(path, []byte("repls:\n  - language: python\n    command: [python3]\n"), 0644))

	reloads := make(chan *File, 4)
	stop, err := Watch(path, logging.NewLogger("watcher-test"), func(cfg *File) {
		reloads <- cfg
	})
	require.NoError(t, err)
	defer stop()

	// A valid rewrite triggers a reload with the new contents.
	require.NoError(t, os.WriteFile(path, []byte("repls:\n  - language: lua\n    command: [lua]\n"), 0644))

	select {
	case cfg := <-reloads:
		require.Len(t, cfg.Repls, 1)
		assert.Equal(t, "lua", cfg.Repls[0].Language)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	// A broken rewrite is skipped; no callback fires.
	require.NoError(t, os.WriteFile(path, []byte("repls: [broken"), 0644))

	select {
	case <-reloads:
		t.Fatal("reload fired for an unparseable file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repls.yml")
	require.NoError(t, os.WriteFile(path, []byte("repls: []\n"), 0644))

	reloads := make(chan *File, 1)
	stop, err := Watch(path, logging.NewLogger("watcher-test"), func(cfg *File) {
		reloads <- cfg
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x: 1\n"), 0644))

	select {
	case <-reloads:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}
