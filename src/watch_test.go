package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestDataWatcherSeesWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	changed := make(chan struct{}, 8)
	w, err := newDataWatcher(path, zap.NewNop(), func() { changed <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.run(ctx)

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`[{"a":1}]`), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for data file")
	}
}

func TestNewDataWatcherMissingDir(t *testing.T) {
	_, err := newDataWatcher(filepath.Join(t.TempDir(), "nope", "rows.json"), zap.NewNop(), func() {})
	require.Error(t, err)
}
