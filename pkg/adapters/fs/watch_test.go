package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/adapters/fs"
	"github.com/aretw0/lectern/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	deck := filepath.Join(root, "Praesentation.baldr.yml")
	require.NoError(t, os.WriteFile(deck, []byte("title: T\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	events, err := fs.Watch(ctx, fs.WatchConfig{Root: root, Pattern: "**/*.baldr.yml"})
	require.NoError(t, err)

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)

	// Not matching the pattern.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(deck, []byte("title: T2\n"), 0644))

	e := nextEvent(t, events)
	assert.Equal(t, "Praesentation.baldr.yml", e.Path)
	assert.Equal(t, core.EventModify, e.Type)

	t.Run("New Subdirectory", func(t *testing.T) {
		sub := filepath.Join(root, "part2")
		require.NoError(t, os.Mkdir(sub, 0755))
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(sub, "Extra.baldr.yml"), []byte("title: X\n"), 0644))

		e := nextEvent(t, events)
		assert.Equal(t, "part2/Extra.baldr.yml", e.Path)
	})

	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestWatch_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := fs.Watch(ctx, fs.WatchConfig{Root: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	_, err = fs.Watch(ctx, fs.WatchConfig{Root: t.TempDir(), Pattern: "[unclosed"})
	assert.Error(t, err)
}
