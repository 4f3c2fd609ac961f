package masters

import "github.com/aretw0/lectern/pkg/core"

var task = &core.Master{
	Name:           "task",
	DisplayName:    "Task",
	Icon:           core.Icon{Name: "task", Color: "yellow"},
	ShortFormField: "markup",
	Fields: core.Contract{
		"markup": {Required: true, Coerce: core.CoerceString, Markup: true, Description: "The task description"},
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("markup"))
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return "**Task:** " + f.String("markup")
	},
}
