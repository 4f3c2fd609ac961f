package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/adapters/fs"
	"github.com/aretw0/lectern/pkg/core"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mediaRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "audio/Air.mp3", "ID3")
	writeFile(t, root, "audio/Air.mp3.yml", `
ref: Bach_Air
uuid: 0D5E0A3A-4CE2-4D7E-9A59-3F3B44F0E2A1
title: Air
composer: Johann Sebastian Bach
samples:
  - ref: theme
    title: Theme
    startTime: 12
`)
	writeFile(t, root, "images/Orchestra.jpg", "JFIF")
	writeFile(t, root, "images/Orchestra.jpg.yml", "title: The orchestra\n")
	// A presentation is not a sidecar: there is no "Praesentation.baldr" file.
	writeFile(t, root, "Praesentation.baldr.yml", "meta: {title: T, ref: R}\n")
	return root
}

func TestResolver_Resolve(t *testing.T) {
	root := mediaRoot(t)
	r := fs.NewResolver(fs.ResolverConfig{Root: root, Concurrency: 2})
	ctx := context.Background()

	assets, err := r.Resolve(ctx, []string{"ref:Bach_Air", "ref:Orchestra"}, true)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	air := assets[0]
	assert.Equal(t, "ref:Bach_Air", air.URI)
	assert.Equal(t, "0d5e0a3a-4ce2-4d7e-9a59-3f3b44f0e2a1", air.UUID)
	assert.Equal(t, filepath.Join(root, "audio", "Air.mp3"), air.Path)
	assert.Equal(t, "Air", air.Title())
	assert.NotContains(t, air.Meta, "ref")
	require.Len(t, air.Samples(), 1)
	assert.Equal(t, "12", air.Samples()[0].StartTime)

	orchestra := assets[1]
	assert.Equal(t, "Orchestra", orchestra.Ref, "ref defaults to the file name")
	assert.Equal(t, "image/jpeg", orchestra.MimeType)
	assert.NotEmpty(t, orchestra.UUID)

	t.Run("By UUID", func(t *testing.T) {
		assets, err := r.Resolve(ctx, []string{"uuid:0d5e0a3a-4ce2-4d7e-9a59-3f3b44f0e2a1"}, true)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "Bach_Air", assets[0].Ref)
	})

	t.Run("Required Miss", func(t *testing.T) {
		_, err := r.Resolve(ctx, []string{"ref:Bach_Air", "ref:Missing", "https:example.org/x.mp3"}, true)
		assert.ErrorIs(t, err, core.ErrUnresolvedMedia)
		assert.ErrorContains(t, err, "ref:Missing")
	})

	t.Run("Optional Miss", func(t *testing.T) {
		assets, err := r.Resolve(ctx, []string{"ref:Missing", "ref:Orchestra"}, false)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "Orchestra", assets[0].Ref)
	})

	t.Run("Web URIs", func(t *testing.T) {
		assets, err := r.Resolve(ctx, []string{"https://example.org/img/organ.jpg#detail", "http://example.org/air.mp3"}, true)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, "https://example.org/img/organ.jpg", assets[0].URI)
		assert.Equal(t, "image/jpeg", assets[0].MimeType)
		assert.Empty(t, assets[0].Path)
		assert.Equal(t, "http://example.org/air.mp3", assets[1].URI)
	})

	t.Run("Unsupported Scheme", func(t *testing.T) {
		_, err := r.Resolve(ctx, []string{"ftp:archive/file.pdf"}, true)
		assert.ErrorIs(t, err, core.ErrUnresolvedMedia)
	})

	state := r.State().(fs.ResolverState)
	assert.Equal(t, 2, state.Assets)
	assert.Equal(t, 2, state.CacheSize)
	assert.NotNil(t, state.LastScan)
	assert.Equal(t, "resolver", r.ComponentType())
}

func TestResolver_Cache(t *testing.T) {
	root := mediaRoot(t)
	ctx := context.Background()

	first := fs.NewResolver(fs.ResolverConfig{Root: root})
	require.NoError(t, first.Scan(ctx))
	assert.FileExists(t, filepath.Join(root, fs.DefaultSystemDir, "index.json"))

	// A second resolver picks the entries up from the index.
	second := fs.NewResolver(fs.ResolverConfig{Root: root})
	require.NoError(t, second.Scan(ctx))
	assets, err := second.Resolve(ctx, []string{"ref:Bach_Air"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Johann Sebastian Bach", assets[0].Meta.String("composer"))

	t.Run("Deleted Media File", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, "images", "Orchestra.jpg")))
		_, err := second.Resolve(ctx, []string{"ref:Orchestra"}, true)
		assert.ErrorIs(t, err, core.ErrUnresolvedMedia)
	})
}

func TestResolver_InvalidSidecarSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Broken.mp3", "ID3")
	writeFile(t, root, "Broken.mp3.yml", "uuid: not-a-uuid\n")

	r := fs.NewResolver(fs.ResolverConfig{Root: root})
	require.NoError(t, r.Scan(context.Background()))

	assets, err := r.Resolve(context.Background(), []string{"ref:Broken"}, false)
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestResolver_ContextCancelled(t *testing.T) {
	r := fs.NewResolver(fs.ResolverConfig{Root: mediaRoot(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, []string{"ref:Bach_Air"}, true)
	assert.ErrorIs(t, err, context.Canceled)
}
