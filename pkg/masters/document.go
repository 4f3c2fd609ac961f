package masters

import (
	"strconv"

	"github.com/aretw0/lectern/pkg/core"
)

var document = &core.Master{
	Name:           "document",
	DisplayName:    "Document",
	Icon:           core.Icon{Name: "file-outline", Color: "gray"},
	ShortFormField: "src",
	Fields: core.Contract{
		"src":   {Required: true, AssetURI: true, Validate: isURI, Description: "URI of a PDF document"},
		"title": {Coerce: core.CoerceString, Markup: true},
		"page":  {Coerce: core.CoerceInt, Validate: func(v any) bool { return v.(int) > 0 }},
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		return fillFromAsset(f, media, "title"), nil
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		title := core.PlainText(f.String("title"))
		if title != "" && f.Has("page") {
			return title + " (p. " + strconv.Itoa(f.Int("page")) + ")"
		}
		return title
	},
}
