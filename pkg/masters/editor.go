package masters

import "github.com/aretw0/lectern/pkg/core"

var editor = &core.Master{
	Name:           "editor",
	DisplayName:    "Editor",
	Icon:           core.Icon{Name: "editor", Color: "blue"},
	ShortFormField: "markup",
	Fields: core.Contract{
		"markup": {Coerce: core.CoerceString, Markup: true, Description: "Text shown in the editor before typing starts"},
	},
}
