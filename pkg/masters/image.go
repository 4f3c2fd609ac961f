package masters

import "github.com/aretw0/lectern/pkg/core"

var image = &core.Master{
	Name:           "image",
	DisplayName:    "Image",
	Icon:           core.Icon{Name: "image", Color: "green"},
	ShortFormField: "src",
	Fields: core.Contract{
		"src":         {Required: true, AssetURI: true, Validate: isURI, Description: "URI of the image"},
		"title":       {Coerce: core.CoerceString, Markup: true},
		"description": {Coerce: core.CoerceString, Markup: true},
		"noMeta":      {Default: false, Coerce: core.CoerceBool, Description: "Hide title and description"},
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		return fillFromAsset(f, media, "title", "description"), nil
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("title"))
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return joinPlain(f.String("title"), f.String("description"))
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return "![" + core.PlainText(f.String("title")) + "](" + f.String("src") + ")"
	},
}

func isURI(v any) bool {
	s, ok := v.(string)
	return ok && core.IsURI(s)
}

// fillFromAsset returns a copy of f in which empty keys are taken from the
// metadata of the asset referenced by src.
func fillFromAsset(f core.Fields, media core.MediaLookup, keys ...string) core.Fields {
	asset, ok := media.Asset(f.String("src"))
	if !ok {
		return f
	}
	out := f.Clone()
	for _, k := range keys {
		if out.String(k) != "" {
			continue
		}
		if v := asset.Meta.String(k); v != "" {
			out[k] = v
		}
	}
	return out
}
