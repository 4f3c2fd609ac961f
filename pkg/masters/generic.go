package masters

import (
	"fmt"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

// defaultCharactersOnSlide bounds the text length of one generic chunk.
const defaultCharactersOnSlide = 400

var generic = &core.Master{
	Name:        "generic",
	DisplayName: "Generic",
	Icon:        core.Icon{Name: "file-presentation-box", Color: "gray"},
	Fields: core.Contract{
		"markup": {
			Required:    true,
			Markup:      true,
			Description: "Markdown text or a list of texts, one per step",
		},
		"charactersOnSlide": {
			Default:     defaultCharactersOnSlide,
			Coerce:      core.CoerceInt,
			Validate:    func(v any) bool { return v.(int) > 0 },
			Description: "Maximum characters per step when splitting long text",
		},
		"onOne": {
			Default:     false,
			Coerce:      core.CoerceBool,
			Description: "Keep all text on one step",
		},
	},
	NormalizeFieldsInput: func(raw any) (any, error) {
		switch raw.(type) {
		case string, []any, []string:
			return map[string]any{"markup": raw}, nil
		}
		return raw, nil
	},
	CollectFieldsOnInstantiation: func(f core.Fields) (core.Fields, error) {
		chunks, err := genericChunks(f["markup"], f.Int("charactersOnSlide"), f.Bool("onOne"))
		if err != nil {
			return nil, err
		}
		f["markup"] = chunks
		return f, nil
	},
	CollectStepsOnInstantiation: func(f core.Fields, steps *core.StepCollector) {
		chunks := stringList(f["markup"])
		if len(chunks) < 2 {
			return
		}
		for _, chunk := range chunks {
			steps.Add(core.Shorten(chunk, stepTitleLength))
		}
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return joinPlain(stringList(f["markup"])...)
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return strings.Join(stringList(f["markup"]), "\n\n")
	},
}

func genericChunks(markup any, limit int, onOne bool) ([]string, error) {
	switch t := markup.(type) {
	case string:
		if onOne {
			return []string{t}, nil
		}
		return core.SplitHTML(t, limit)
	case []string, []any:
		items := stringList(t)
		if onOne {
			return []string{strings.Join(items, "\n")}, nil
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: markup must be text or a list of texts, got %T", core.ErrInvalidValue, markup)
}
