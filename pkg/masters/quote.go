package masters

import (
	"strings"

	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/typed"
)

type quoteFields struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source,omitempty"`
	Prolog string `json:"prolog,omitempty"`
	Epilog string `json:"epilog,omitempty"`
}

var quote = &core.Master{
	Name:           "quote",
	DisplayName:    "Quote",
	Icon:           core.Icon{Name: "quote", Color: "brown"},
	ShortFormField: "text",
	Fields: core.Contract{
		"text":   {Required: true, Coerce: core.CoerceString, Markup: true, Description: "The quoted text"},
		"author": {Coerce: core.CoerceString},
		"date":   {Coerce: core.CoerceString},
		"source": {Coerce: core.CoerceString, Markup: true},
		"prolog": {Coerce: core.CoerceString, Markup: true},
		"epilog": {Coerce: core.CoerceString, Markup: true},
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		if author := f.String("author"); author != "" {
			return "Quote by " + author
		}
		return ""
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		q := typed.MustDecode[quoteFields](f)
		return joinPlain(q.Text, q.Author, q.Date)
	},
	GenerateMarkupExport: func(f core.Fields) string {
		q := typed.MustDecode[quoteFields](f)
		var b strings.Builder
		b.WriteString("> " + q.Text)
		if q.Author != "" || q.Date != "" {
			b.WriteString("\n>\n> — " + strings.TrimSpace(q.Author+" "+q.Date))
		}
		return b.String()
	},
}
