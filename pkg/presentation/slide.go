// Package presentation builds slide trees from raw presentation documents and
// drives the two-phase media resolution protocol.
package presentation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/masters"
	"github.com/aretw0/lectern/pkg/typed"
)

// StateAbsent excludes a slide, and everything nested under it, from the
// collection.
const StateAbsent = "absent"

// titleLength bounds slide titles derived from plain text.
const titleLength = 60

// slideMeta holds the keys a slide element may carry next to its master.
var slideMeta = core.Contract{
	"ref":         {Coerce: core.CoerceString},
	"title":       {Coerce: core.CoerceString},
	"description": {Coerce: core.CoerceString},
	"source":      {Coerce: core.CoerceString},
	"audioOverlay": {
		Coerce:   core.CoerceStringList,
		Validate: allURIs,
	},
	"state": {Default: "default", Validate: core.OneOf("default", StateAbsent)},
}

func isMetaKey(key string) bool {
	_, ok := slideMeta[key]
	return ok
}

func allURIs(v any) bool {
	for _, u := range v.([]string) {
		if !core.IsURI(u) {
			return false
		}
	}
	return true
}

// Slide is one master binding with its normalized fields and steps.
type Slide struct {
	No    int
	Level int

	Ref          string
	MetaTitle    string
	Description  string
	Source       string
	State        string
	AudioOverlay []string

	Master *core.Master

	// MediaURIs and OptionalMediaURIs are fragment-less and deduplicated.
	MediaURIs         []string
	OptionalMediaURIs []string

	// Slides are the child slides in document order.
	Slides []*Slide

	fields core.Fields
	steps  []*core.Step
	assets []*core.Asset
}

// NewSlide builds a slide from its raw document element using the built-in
// masters.
func NewSlide(raw any, no, level int) (*Slide, error) {
	return newSlide(masters.Registry(), raw, no, level)
}

func newSlide(registry *core.Registry, raw any, no, level int) (*Slide, error) {
	s := &Slide{No: no, Level: level}
	if err := s.bind(registry, raw); err != nil {
		return nil, &core.SlideError{No: no, Ref: s.Ref, Err: err}
	}
	return s, nil
}

func (s *Slide) bind(registry *core.Registry, raw any) error {
	var masterName string
	var masterRaw any
	meta := core.Fields{}

	switch t := raw.(type) {
	case string:
		if !registry.Has(t) {
			return fmt.Errorf("%w: %q is not a master name", core.ErrNoMaster, t)
		}
		masterName = t
	default:
		element, err := core.AsFields(raw)
		if err != nil {
			return err
		}
		var candidates []string
		for key, value := range element {
			switch {
			case registry.Has(key):
				candidates = append(candidates, key)
			case isMetaKey(key):
				meta[key] = value
			default:
				return fmt.Errorf("%w: %q", core.ErrUnknownSlideProperty, key)
			}
		}
		switch len(candidates) {
		case 0:
			return core.ErrNoMaster
		case 1:
			masterName = candidates[0]
			masterRaw = element[masterName]
		default:
			slices.Sort(candidates)
			return fmt.Errorf("%w: %s", core.ErrAmbiguousMaster, strings.Join(candidates, ", "))
		}
	}

	// Keep the ref available for error reports even if other meta is bad.
	s.Ref, _ = meta["ref"].(string)

	normalizedMeta, err := core.NormalizeContract("slide", slideMeta, meta)
	if err != nil {
		return err
	}
	s.Ref = normalizedMeta.String("ref")
	s.MetaTitle = normalizedMeta.String("title")
	s.Description = normalizedMeta.String("description")
	s.Source = normalizedMeta.String("source")
	s.State = normalizedMeta.String("state")
	s.AudioOverlay, _ = normalizedMeta["audioOverlay"].([]string)

	master, err := registry.Get(masterName)
	if err != nil {
		return err
	}
	s.Master = master

	fields, err := master.NormalizeFields(masterRaw)
	if err != nil {
		return err
	}
	s.fields = fields
	s.MediaURIs = master.MediaURIs(fields)
	s.OptionalMediaURIs = master.OptionalMediaURIs(fields)
	s.steps = master.Steps(fields)
	return nil
}

// MasterName returns the name of the bound master.
func (s *Slide) MasterName() string {
	return s.Master.Name
}

// Fields returns the normalized field data. The bag must not be modified.
func (s *Slide) Fields() core.Fields {
	return s.fields
}

// Steps returns the incremental-reveal steps of the slide.
func (s *Slide) Steps() []*core.Step {
	return s.steps
}

// Assets returns the media resolved for this slide, in URI order. It is
// empty before resolution.
func (s *Slide) Assets() []*core.Asset {
	return s.assets
}

// Title returns the explicit title, else the title derived by the master,
// else the shortened plain text, else the master's display name.
func (s *Slide) Title() string {
	if s.MetaTitle != "" {
		return s.MetaTitle
	}
	if s.Master.DeriveTitleFromFields != nil {
		if t := s.Master.DeriveTitleFromFields(s.fields); t != "" {
			return t
		}
	}
	if t := core.Shorten(s.PlainText(), titleLength); t != "" {
		return t
	}
	return s.Master.DisplayName
}

// PlainText returns a plain text rendition of the field data.
func (s *Slide) PlainText() string {
	return s.Master.PlainText(s.fields)
}

// ExportMarkup renders the slide as Markdown.
func (s *Slide) ExportMarkup() string {
	if s.Master.GenerateMarkupExport != nil {
		return s.Master.GenerateMarkupExport(s.fields)
	}
	if text := s.PlainText(); text != "" {
		return text
	}
	return "*(" + s.Master.DisplayName + ")*"
}

// Walk calls fn for s and all nested slides depth-first.
func (s *Slide) Walk(fn func(*Slide)) {
	fn(s)
	for _, child := range s.Slides {
		child.Walk(fn)
	}
}

func (s *Slide) String() string {
	return fmt.Sprintf("%d %s %q", s.No, s.Master.Name, s.Title())
}

// finalize runs the after-resolution hooks against the resolved media.
func (s *Slide) finalize(media core.AssetIndex) error {
	s.assets = nil
	seen := make(map[string]bool)
	for _, uri := range slices.Concat(s.MediaURIs, s.AudioOverlay, s.OptionalMediaURIs) {
		uri = core.StripFragment(uri)
		if seen[uri] {
			continue
		}
		seen[uri] = true
		if a, ok := media.Asset(uri); ok {
			s.assets = append(s.assets, a)
		}
	}

	if s.Master.CollectFieldsAfterResolution != nil {
		fields, err := s.Master.CollectFieldsAfterResolution(s.fields, media)
		if err != nil {
			return &core.SlideError{No: s.No, Ref: s.Ref, Err: &core.FieldError{Master: s.Master.Name, Err: err}}
		}
		s.fields = fields
	}
	if s.Master.CollectStepsAfterResolution != nil {
		steps := core.NewStepCollector(s.steps...)
		s.Master.CollectStepsAfterResolution(s.fields, media, steps)
		s.steps = steps.Steps()
	}
	return nil
}

// Decode materializes the slide's field data as a typed record.
func Decode[T any](s *Slide) (T, error) {
	return typed.Decode[T](s.fields)
}
