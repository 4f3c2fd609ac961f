package masters

import (
	"regexp"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

var hrPattern = regexp.MustCompile(`\s*<hr\s*/?>\s*`)

var note = &core.Master{
	Name:           "note",
	DisplayName:    "Note",
	Icon:           core.Icon{Name: "pencil", Color: "blue"},
	ShortFormField: "markup",
	Fields: core.Contract{
		"markup": {Required: true, Coerce: core.CoerceString, Markup: true, Description: "Text; horizontal rules separate steps"},
	},
	CollectStepsOnInstantiation: func(f core.Fields, steps *core.StepCollector) {
		sections := noteSections(f.String("markup"))
		if len(sections) < 2 {
			return
		}
		for _, s := range sections {
			steps.Add(core.Shorten(s, stepTitleLength))
		}
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return joinPlain(noteSections(f.String("markup"))...)
	},
}

func noteSections(markup string) []string {
	var sections []string
	for _, part := range hrPattern.Split(markup, -1) {
		if strings.TrimSpace(part) != "" {
			sections = append(sections, part)
		}
	}
	return sections
}
