package masters

import (
	"fmt"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

var sampleList = &core.Master{
	Name:        "sampleList",
	DisplayName: "Sample list",
	Icon:        core.Icon{Name: "music", Color: "brown"},
	Fields: core.Contract{
		"heading":     {Coerce: core.CoerceString, Markup: true},
		"samples":     {Required: true, Description: "Whitespace separated URIs, or a list of URIs or {uri, title} records"},
		"notNumbered": {Default: false, Coerce: core.CoerceBool},
	},
	NormalizeFieldsInput: func(raw any) (any, error) {
		switch t := raw.(type) {
		case string:
			return map[string]any{"samples": compactSamples(t)}, nil
		case []any:
			return map[string]any{"samples": t}, nil
		}
		return raw, nil
	},
	CollectFieldsOnInstantiation: func(f core.Fields) (core.Fields, error) {
		samples, err := wrapSamples(f["samples"])
		if err != nil {
			return nil, err
		}
		f["samples"] = samples
		return f, nil
	},
	CollectStepsOnInstantiation: func(f core.Fields, steps *core.StepCollector) {
		for _, s := range mappingList(f["samples"]) {
			steps.Add(sampleLabel(s))
		}
	},
	CollectMediaURIs: func(f core.Fields) []string {
		var uris []string
		for _, s := range mappingList(f["samples"]) {
			uris = append(uris, s["uri"].(string))
		}
		return uris
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		out := f.Clone()
		for _, s := range mappingList(out["samples"]) {
			if _, ok := s["title"]; ok {
				continue
			}
			uri, _ := core.ParseURI(s["uri"].(string))
			asset, ok := media.Asset(uri.Asset())
			if !ok {
				continue
			}
			title := asset.Title()
			for _, sample := range asset.Samples() {
				if uri.Fragment != "" && sample.Ref == uri.Fragment && sample.Title != "" {
					title = sample.Title
				}
			}
			if title != "" {
				s["title"] = title
			}
		}
		return out, nil
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		var parts []string
		for _, s := range mappingList(f["samples"]) {
			parts = append(parts, sampleLabel(s))
		}
		return joinPlain(parts...)
	},
}

func sampleLabel(s map[string]any) string {
	if t, ok := s["title"].(string); ok && t != "" {
		return t
	}
	return s["uri"].(string)
}

// wrapSamples expands the compact sample notations into {uri, title} records.
// compactSamples splits the whitespace separated URI form.
func compactSamples(s string) []any {
	list := make([]any, 0)
	for _, uri := range strings.Fields(s) {
		list = append(list, uri)
	}
	return list
}

func wrapSamples(v any) ([]any, error) {
	if compact, ok := v.(string); ok {
		v = compactSamples(compact)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: samples must be a list, got %T", core.ErrInvalidValue, v)
	}
	out := make([]any, 0, len(list))
	for i, item := range list {
		var record map[string]any
		switch t := item.(type) {
		case string:
			record = map[string]any{"uri": t}
		case map[string]any:
			if err := checkKeys(t, "uri", "title"); err != nil {
				return nil, fmt.Errorf("sample %d: %w", i+1, err)
			}
			record = map[string]any{"uri": t["uri"]}
			if title, ok := t["title"].(string); ok {
				record["title"] = title
			}
		default:
			return nil, fmt.Errorf("sample %d: %w: unexpected %T", i+1, core.ErrInvalidValue, item)
		}
		uri, ok := record["uri"].(string)
		if !ok || !core.IsURI(uri) {
			return nil, fmt.Errorf("sample %d: %w: %v is not a media URI", i+1, core.ErrInvalidValue, record["uri"])
		}
		out = append(out, record)
	}
	return out, nil
}
