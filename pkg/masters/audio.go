package masters

import (
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/typed"
)

type audioFields struct {
	Src         string `json:"src"`
	Title       string `json:"title,omitempty"`
	Composer    string `json:"composer,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Description string `json:"description,omitempty"`
	Cover       string `json:"cover,omitempty"`
}

var audio = &core.Master{
	Name:           "audio",
	DisplayName:    "Audio",
	Icon:           core.Icon{Name: "music", Color: "brown"},
	ShortFormField: "src",
	Fields: core.Contract{
		"src": {
			Required:    true,
			AssetURI:    true,
			Validate:    isURI,
			Description: "URI of the audio file, optionally with a #sample fragment",
		},
		"title":       {Coerce: core.CoerceString, Markup: true},
		"composer":    {Coerce: core.CoerceString},
		"artist":      {Coerce: core.CoerceString},
		"description": {Coerce: core.CoerceString, Markup: true},
		"cover":       {AssetURI: true, Validate: isURI, Description: "URI of a cover image"},
		"autoplay":    {Default: false, Coerce: core.CoerceBool},
		"playthrough": {Default: false, Coerce: core.CoerceBool},
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		return fillFromAsset(f, media, "title", "composer", "artist", "description"), nil
	},
	CollectStepsAfterResolution: func(f core.Fields, media core.MediaLookup, steps *core.StepCollector) {
		src, _ := core.ParseURI(f.String("src"))
		if src.Fragment != "" {
			return
		}
		asset, ok := media.Asset(src.Asset())
		if !ok {
			return
		}
		samples := asset.Samples()
		if len(samples) < 2 {
			return
		}
		for _, s := range samples {
			title := s.Title
			if title == "" {
				title = s.Ref
			}
			steps.Add(title)
		}
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		a := typed.MustDecode[audioFields](f)
		switch {
		case a.Title != "" && a.Composer != "":
			return a.Composer + ": " + core.PlainText(a.Title)
		case a.Title != "":
			return core.PlainText(a.Title)
		}
		return ""
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		a := typed.MustDecode[audioFields](f)
		return joinPlain(a.Title, a.Composer, a.Artist, a.Description)
	},
	GenerateMarkupExport: func(f core.Fields) string {
		a := typed.MustDecode[audioFields](f)
		return "🎵 " + core.PlainText(a.Title) + " (" + a.Src + ")"
	},
}
