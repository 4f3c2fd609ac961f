package presentation

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/aretw0/lectern/pkg/core"
)

// Meta describes a presentation as a whole.
type Meta struct {
	Title         string `json:"title"`
	Ref           string `json:"ref"`
	Subtitle      string `json:"subtitle,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Grade         int    `json:"grade,omitempty"`
	Curriculum    string `json:"curriculum,omitempty"`
	CurriculumURL string `json:"curriculumUrl,omitempty"`
	UUID          string `json:"uuid,omitempty"`
	// Path is the file the presentation was read from.
	Path string `json:"path,omitempty"`
}

var metaContract = core.Contract{
	"title":         {Required: true, Coerce: core.CoerceString},
	"ref":           {Required: true, Coerce: core.CoerceString, Validate: core.MatchPattern(`[^\s#:]+`)},
	"subtitle":      {Coerce: core.CoerceString},
	"subject":       {Coerce: core.CoerceString},
	"grade":         {Coerce: core.CoerceInt, Validate: func(v any) bool { return v.(int) > 0 }},
	"curriculum":    {Coerce: core.CoerceString},
	"curriculumUrl": {Coerce: core.CoerceString, Validate: isHTTPURL},
	"uuid":          {Coerce: core.CoerceString, Validate: isUUID},
	"path":          {Coerce: core.CoerceString},
}

func isHTTPURL(v any) bool {
	u, err := url.Parse(v.(string))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isUUID(v any) bool {
	return uuid.Validate(v.(string)) == nil
}

// parseMeta extracts the metadata from the top level of a document, given
// either nested under `meta` or flattened next to `slides`.
func parseMeta(doc core.Fields) (Meta, error) {
	top := make(core.Fields, len(doc))
	for k, v := range doc {
		if k != "slides" {
			top[k] = v
		}
	}

	bag := top
	if nested, ok := top["meta"]; ok {
		if len(top) > 1 {
			return Meta{}, fmt.Errorf("%w: meta given both nested and at the top level", core.ErrMalformedMeta)
		}
		var err error
		if bag, err = core.AsFields(nested); err != nil {
			return Meta{}, fmt.Errorf("%w: %w", core.ErrMalformedMeta, err)
		}
	}

	fields, err := core.NormalizeContract("meta", metaContract, bag)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %w", core.ErrMalformedMeta, err)
	}
	return Meta{
		Title:         fields.String("title"),
		Ref:           fields.String("ref"),
		Subtitle:      fields.String("subtitle"),
		Subject:       fields.String("subject"),
		Grade:         fields.Int("grade"),
		Curriculum:    fields.String("curriculum"),
		CurriculumURL: fields.String("curriculumUrl"),
		UUID:          fields.String("uuid"),
		Path:          fields.String("path"),
	}, nil
}
