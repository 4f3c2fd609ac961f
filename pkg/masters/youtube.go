package masters

import "github.com/aretw0/lectern/pkg/core"

var youtube = &core.Master{
	Name:           "youtube",
	DisplayName:    "YouTube",
	Icon:           core.Icon{Name: "youtube", Color: "red"},
	ShortFormField: "id",
	Fields: core.Contract{
		"id":      {Required: true, Coerce: core.CoerceString, Validate: core.MatchPattern(`[A-Za-z0-9_-]{11}`)},
		"heading": {Coerce: core.CoerceString, Markup: true},
		"info":    {Coerce: core.CoerceString, Markup: true},
		"offline": {Default: false, Coerce: core.CoerceBool, Description: "Set after resolution when the offline copy exists"},
	},
	// The offline copy is optional: without it the slide plays online.
	CollectOptionalMediaURIs: func(f core.Fields) []string {
		return []string{youtubeOfflineURI(f.String("id"))}
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		out := f.Clone()
		_, offline := media.Asset(youtubeOfflineURI(f.String("id")))
		out["offline"] = offline
		return out, nil
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		if h := core.PlainText(f.String("heading")); h != "" {
			return h
		}
		return "YouTube " + f.String("id")
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		return joinPlain(f.String("heading"), f.String("info"))
	},
	GenerateMarkupExport: func(f core.Fields) string {
		return "https://youtu.be/" + f.String("id")
	},
}

func youtubeOfflineURI(id string) string {
	return "ref:YT_" + id
}
