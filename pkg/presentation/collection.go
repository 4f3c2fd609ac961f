package presentation

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/masters"
)

// Collection is the slide tree of a presentation together with its
// flattened, depth-first index.
type Collection struct {
	// Tree holds the top-level slides; children hang off Slide.Slides.
	Tree []*Slide
	// Flat holds every slide in depth-first order. Flat[i].No == i+1.
	Flat []*Slide
	// WithRef maps explicit slide references to their slides.
	WithRef map[string]*Slide

	// MediaURIs is the sorted union of all required URIs, audio overlays
	// included. OptionalMediaURIs excludes anything already required.
	MediaURIs         []string
	OptionalMediaURIs []string

	registry *core.Registry
}

// NewCollection builds a collection from the raw `slides` list using the
// built-in masters.
func NewCollection(raw any) (*Collection, error) {
	return newCollection(masters.Registry(), raw)
}

func newCollection(registry *core.Registry, raw any) (*Collection, error) {
	c := &Collection{
		WithRef:  make(map[string]*Slide),
		registry: registry,
	}

	tree, err := c.build(raw, 1)
	if err != nil {
		return nil, err
	}
	c.Tree = tree
	c.aggregate()
	return c, nil
}

func (c *Collection) build(raw any, level int) ([]*Slide, error) {
	var elements []any
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		elements = t
	default:
		return nil, fmt.Errorf("%w: slides must be a list, got %T", core.ErrMalformedFields, raw)
	}

	var slides []*Slide
	for _, element := range elements {
		var children any
		if m, err := core.AsFields(element); err == nil {
			if state, _ := m["state"].(string); state == StateAbsent {
				continue
			}
			if nested, ok := m["slides"]; ok {
				children = nested
				element = withoutKey(m, "slides")
			}
		}

		slide, err := newSlide(c.registry, element, len(c.Flat)+1, level)
		if err != nil {
			return nil, err
		}
		c.Flat = append(c.Flat, slide)

		slide.Slides, err = c.build(children, level+1)
		if err != nil {
			return nil, err
		}

		if slide.Ref != "" {
			if prev, dup := c.WithRef[slide.Ref]; dup {
				return nil, &core.SlideError{
					No:  slide.No,
					Ref: slide.Ref,
					Err: fmt.Errorf("%w: already used by slide %d", core.ErrDuplicateRef, prev.No),
				}
			}
			c.WithRef[slide.Ref] = slide
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

func withoutKey(m core.Fields, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func (c *Collection) aggregate() {
	required := make(map[string]struct{})
	optional := make(map[string]struct{})
	for _, s := range c.Flat {
		for _, u := range s.MediaURIs {
			required[u] = struct{}{}
		}
		for _, u := range s.AudioOverlay {
			required[core.StripFragment(u)] = struct{}{}
		}
		for _, u := range s.OptionalMediaURIs {
			optional[u] = struct{}{}
		}
	}
	for u := range required {
		delete(optional, u)
	}
	c.MediaURIs = slices.Sorted(maps.Keys(required))
	c.OptionalMediaURIs = slices.Sorted(maps.Keys(optional))
}

// Len returns the number of slides at all levels.
func (c *Collection) Len() int {
	return len(c.Flat)
}
