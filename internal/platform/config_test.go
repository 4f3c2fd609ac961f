package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := LoadConfig(root)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.MediaRoot())
		assert.Len(t, cfg.Options(), 1)
	})

	t.Run("Empty File", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), nil, 0644))
		_, err := LoadConfig(root)
		require.NoError(t, err)
	})

	t.Run("Full", func(t *testing.T) {
		root := t.TempDir()
		content := "media: ../media\nsystemDir: .cache\nconcurrency: 3\npattern: \"**/*.yml\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0644))

		cfg, err := LoadConfig(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "..", "media"), cfg.MediaRoot())

		o := applyOptions(cfg.Options())
		assert.Equal(t, filepath.Join(root, "..", "media"), o.mediaRoot)
		assert.Equal(t, ".cache", o.systemDir)
		assert.Equal(t, 3, o.concurrency)
		assert.Equal(t, "**/*.yml", o.pattern)
	})

	t.Run("Explicit Options Win", func(t *testing.T) {
		cfg := &Config{root: "/lessons", Pattern: "**/*.yml"}
		o := applyOptions(append(cfg.Options(), WithPattern("*.json")))
		assert.Equal(t, "*.json", o.pattern)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("mediaa: x\n"), 0644))
		_, err := LoadConfig(root)
		assert.ErrorContains(t, err, "mediaa")
	})

	t.Run("Negative Concurrency", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("concurrency: -1\n"), 0644))
		_, err := LoadConfig(root)
		assert.Error(t, err)
	})
}

func TestProjectOptions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("media: assets\n"), 0644))
	sub := filepath.Join(root, "lessons")
	require.NoError(t, os.Mkdir(sub, 0755))

	opts, err := ProjectOptions(sub, nil)
	require.NoError(t, err)
	o := applyOptions(opts)
	assert.Equal(t, filepath.Join(root, "assets"), o.mediaRoot)
}
