package masters

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

var wikipedia = &core.Master{
	Name:           "wikipedia",
	DisplayName:    "Wikipedia",
	Icon:           core.Icon{Name: "wikipedia", Color: "black"},
	ShortFormField: "title",
	Fields: core.Contract{
		"title":    {Required: true, Coerce: core.CoerceString, Description: "Article title"},
		"language": {Default: "en", Validate: core.MatchPattern(`[a-z]{2,3}`)},
		"oldid":    {Coerce: core.CoerceInt, Description: "Pinned revision"},
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		return "Wikipedia: " + f.String("title")
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return f.String("title")
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return "[" + f.String("title") + "](" + wikipediaURL(f) + ")"
	},
}

func wikipediaURL(f core.Fields) string {
	u := "https://" + f.String("language") + ".wikipedia.org/wiki/" +
		url.PathEscape(strings.ReplaceAll(f.String("title"), " ", "_"))
	if f.Has("oldid") {
		u += "?oldid=" + strconv.Itoa(f.Int("oldid"))
	}
	return u
}
