package masters

import "github.com/aretw0/lectern/pkg/core"

var section = &core.Master{
	Name:           "section",
	DisplayName:    "Section",
	Icon:           core.Icon{Name: "section", Color: "orange"},
	ShortFormField: "heading",
	Fields: core.Contract{
		"heading": {Required: true, Coerce: core.CoerceString, Markup: true},
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("heading"))
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("heading"))
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return "## " + core.PlainText(f.String("heading"))
	},
}
