package masters

import "github.com/aretw0/lectern/pkg/core"

var camera = &core.Master{
	Name:        "camera",
	DisplayName: "Document camera",
	Icon:        core.Icon{Name: "document-camera", Color: "red"},
	Fields:      core.Contract{},
	GenerateMarkupExport: func(core.Fields) string {
		return "*(document camera)*"
	},
}
