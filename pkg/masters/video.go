package masters

import "github.com/aretw0/lectern/pkg/core"

var video = &core.Master{
	Name:           "video",
	DisplayName:    "Video",
	Icon:           core.Icon{Name: "video-vintage", Color: "purple"},
	ShortFormField: "src",
	Fields: core.Contract{
		"src":      {Required: true, AssetURI: true, Validate: isURI},
		"title":    {Coerce: core.CoerceString, Markup: true},
		"showMeta": {Default: false, Coerce: core.CoerceBool},
	},
	CollectFieldsAfterResolution: func(f core.Fields, media core.MediaLookup) (core.Fields, error) {
		return fillFromAsset(f, media, "title"), nil
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("title"))
	},
}
