package presentation

import (
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/typed"
)

// Export returns the normalized document: the meta section and the slide
// tree with canonical field data. The result can be serialized and parsed
// again. Once resolved, fields filled in from the media are included.
func (p *Presentation) Export() (core.Fields, error) {
	meta := p.Meta
	meta.Path = ""
	metaFields, err := typed.Encode(meta)
	if err != nil {
		return nil, err
	}

	doc := core.Fields{"meta": map[string]any(metaFields)}
	if len(p.Slides.Tree) > 0 {
		doc["slides"] = exportSlides(p.Slides.Tree)
	}
	return doc, nil
}

func exportSlides(slides []*Slide) []any {
	out := make([]any, 0, len(slides))
	for _, s := range slides {
		out = append(out, s.Export())
	}
	return out
}

// Export returns the slide as a document element: its master keyed by name,
// the explicit slide meta keys and the child slides.
func (s *Slide) Export() map[string]any {
	el := map[string]any{s.MasterName(): map[string]any(s.fields.Clone())}
	set := func(key, value string) {
		if value != "" {
			el[key] = value
		}
	}
	set("ref", s.Ref)
	set("title", s.MetaTitle)
	set("description", s.Description)
	set("source", s.Source)
	if len(s.AudioOverlay) > 0 {
		el["audioOverlay"] = append([]string(nil), s.AudioOverlay...)
	}
	if len(s.Slides) > 0 {
		el["slides"] = exportSlides(s.Slides)
	}
	return el
}
