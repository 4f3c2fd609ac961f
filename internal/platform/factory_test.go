package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/adapters/fs"
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/presentation"
)

const baroqueLesson = `
meta:
  title: Baroque orchestra
  ref: Baroque_Orchestra
slides:
  - camera
  - image: ref:./Orchestra
  - title: Listening
    audio: ref:Air
`

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// project lays out a project with a presentation and its media.
func project(t *testing.T) (root, lesson string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".lectern"), 0755))
	lesson = writeFile(t, root, "lessons/baroque.lectern.yml", baroqueLesson)
	writeFile(t, root, "media/Orchestra.jpg", "JFIF")
	writeFile(t, root, "media/Orchestra.jpg.yml", "ref: Baroque_Orchestra_Orchestra\ntitle: The orchestra\n")
	writeFile(t, root, "media/Air.mp3", "ID3")
	writeFile(t, root, "media/Air.mp3.yml", "title: Air\n")
	return root, lesson
}

func TestOpen(t *testing.T) {
	_, lesson := project(t)

	p, err := Open(lesson)
	require.NoError(t, err)

	assert.Equal(t, presentation.StatusParsed, p.Status())
	assert.Equal(t, "Baroque_Orchestra", p.Meta.Ref)
	assert.Equal(t, lesson, p.Meta.Path)
	require.Equal(t, 3, p.Slides.Len())
	assert.Equal(t, []string{"ref:Air", "ref:Baroque_Orchestra_Orchestra"}, p.Slides.MediaURIs)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing File", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "missing.lectern.yml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		path := writeFile(t, dir, "notes.txt", "hello")
		_, err := Open(path)
		assert.Error(t, err)
	})

	t.Run("Unknown Master", func(t *testing.T) {
		path := writeFile(t, dir, "broken.lectern.yml", "meta: {title: T, ref: R}\nslides:\n  - nope\n")
		_, err := Open(path)
		assert.ErrorIs(t, err, core.ErrNoMaster)
	})
}

func TestLoad(t *testing.T) {
	_, lesson := project(t)

	p, err := Load(context.Background(), lesson)
	require.NoError(t, err)
	assert.Equal(t, presentation.StatusResolved, p.Status())

	image := p.SlideByNo(2)
	require.NotNil(t, image)
	assert.Equal(t, "The orchestra", image.Title())
	assert.Len(t, p.Media(), 2)
}

func TestLoad_MissingMedia(t *testing.T) {
	root, lesson := project(t)
	require.NoError(t, os.Remove(filepath.Join(root, "media", "Air.mp3")))

	_, err := Load(context.Background(), lesson)
	assert.ErrorIs(t, err, core.ErrUnresolvedMedia)
}

type staticResolver struct {
	calls int
}

func (r *staticResolver) Resolve(_ context.Context, uris []string, _ bool) ([]*core.Asset, error) {
	r.calls++
	assets := make([]*core.Asset, 0, len(uris))
	for _, uri := range uris {
		assets = append(assets, &core.Asset{URI: uri, Meta: map[string]any{"title": uri}})
	}
	return assets, nil
}

func TestLoad_WithResolver(t *testing.T) {
	_, lesson := project(t)
	r := &staticResolver{}

	p, err := Load(context.Background(), lesson, WithResolver(r))
	require.NoError(t, err)
	assert.Equal(t, presentation.StatusResolved, p.Status())
	assert.Positive(t, r.calls)
	assert.Same(t, core.Resolver(r), NewResolver(WithResolver(r)))
}

func TestResolverFor(t *testing.T) {
	root, lesson := project(t)

	// Resolving from another working directory must still find the media
	// of the presentation's project.
	t.Chdir(t.TempDir())

	p, err := Open(lesson)
	require.NoError(t, err)

	r := ResolverFor(p)
	require.NoError(t, p.Resolve(context.Background(), r))
	assert.Equal(t, presentation.StatusResolved, p.Status())

	state := r.(*fs.Resolver).State().(fs.ResolverState)
	assert.Equal(t, root, state.Root)

	injected := &staticResolver{}
	assert.Same(t, core.Resolver(injected), ResolverFor(p, WithResolver(injected)))
}
