package presentation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/presentation"
)

func TestCollection_Flatten(t *testing.T) {
	c, err := presentation.NewCollection([]any{
		map[string]any{
			"section": "Part 1",
			"slides": []any{
				"camera",
				map[string]any{"note": "hidden", "state": "absent", "slides": []any{"camera"}},
				map[string]any{"task": "Sing", "slides": []any{"editor"}},
			},
		},
		map[string]any{"section": "Part 2"},
	})
	require.NoError(t, err)

	require.Len(t, c.Tree, 2)
	require.Len(t, c.Flat, 5)
	for i, s := range c.Flat {
		assert.Equal(t, i+1, s.No, "slide %d", i)
	}

	names := make([]string, 0, len(c.Flat))
	levels := make([]int, 0, len(c.Flat))
	for _, s := range c.Flat {
		names = append(names, s.MasterName())
		levels = append(levels, s.Level)
	}
	assert.Equal(t, []string{"section", "camera", "task", "editor", "section"}, names)
	assert.Equal(t, []int{1, 2, 2, 3, 1}, levels)

	part1 := c.Tree[0]
	require.Len(t, part1.Slides, 2)
	assert.Same(t, c.Flat[2], part1.Slides[1])
	assert.Same(t, c.Flat[3], part1.Slides[1].Slides[0])

	var walked int
	part1.Walk(func(*presentation.Slide) { walked++ })
	assert.Equal(t, 4, walked)
}

func TestCollection_Refs(t *testing.T) {
	t.Run("Distinct", func(t *testing.T) {
		c, err := presentation.NewCollection([]any{
			map[string]any{"camera": nil, "ref": "a"},
			map[string]any{"section": "S", "ref": "b", "slides": []any{
				map[string]any{"camera": nil, "ref": "c"},
			}},
			"camera",
		})
		require.NoError(t, err)
		assert.Len(t, c.WithRef, 3)
		assert.Equal(t, 3, c.WithRef["c"].No)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := presentation.NewCollection([]any{
			map[string]any{"camera": nil, "ref": "a"},
			map[string]any{"section": "S", "slides": []any{
				map[string]any{"editor": nil, "ref": "a"},
			}},
		})
		require.ErrorIs(t, err, core.ErrDuplicateRef)

		var se *core.SlideError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 3, se.No)
		assert.Equal(t, "a", se.Ref)
	})
}

func TestCollection_MediaURIs(t *testing.T) {
	c, err := presentation.NewCollection([]any{
		map[string]any{"image": "ref:B"},
		map[string]any{"audio": "ref:A#chorus"},
		map[string]any{"youtube": "dQw4w9WgXcQ", "audioOverlay": []any{"ref:YT_dQw4w9WgXcQ"}},
		map[string]any{"image": "ref:B"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ref:A", "ref:B", "ref:YT_dQw4w9WgXcQ"}, c.MediaURIs)
	assert.Empty(t, c.OptionalMediaURIs, "overlay makes the offline copy required")
}

func TestSlide_MasterDetection(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		wantErr error
	}{
		{"No Master", map[string]any{"title": "Lonely"}, core.ErrNoMaster},
		{"Two Masters", map[string]any{"camera": nil, "editor": "x"}, core.ErrAmbiguousMaster},
		{"Unknown Name", "projector", core.ErrNoMaster},
		{"Unknown Property", map[string]any{"camera": nil, "colour": "red"}, core.ErrUnknownSlideProperty},
		{"Not A Mapping", 42, core.ErrMalformedFields},
		{"Bad Field", map[string]any{"image": map[string]any{"src": "ref:X", "width": 3}}, core.ErrUnknownField},
		{"Bad Overlay", map[string]any{"camera": nil, "audioOverlay": "not-a-uri"}, core.ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := presentation.NewSlide(tt.raw, 7, 1)
			require.ErrorIs(t, err, tt.wantErr)

			var se *core.SlideError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, 7, se.No)
		})
	}
}

func TestSlide_Title(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"Meta Title", map[string]any{"quote": "Cogito", "title": "Descartes"}, "Descartes"},
		{"Derived", map[string]any{"quote": map[string]any{"text": "Cogito", "author": "Descartes"}}, "Quote by Descartes"},
		{"Plain Text", map[string]any{"task": "Listen to the **whole** piece and take notes on the instrumentation"}, "Listen to the whole piece and take notes on the…"},
		{"Display Name", "camera", "Document camera"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := presentation.NewSlide(tt.raw, 1, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Title())
		})
	}
}

func TestSlide_Decode(t *testing.T) {
	s, err := presentation.NewSlide(map[string]any{"wikipedia": map[string]any{"title": "Fugue", "oldid": "99"}}, 1, 1)
	require.NoError(t, err)

	type article struct {
		Title    string `json:"title"`
		Language string `json:"language"`
		OldID    int    `json:"oldid"`
	}
	a, err := presentation.Decode[article](s)
	require.NoError(t, err)
	assert.Equal(t, article{Title: "Fugue", Language: "en", OldID: 99}, a)
}
