package presentation

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lectern/pkg/core"
)

// refShorthand matches `scheme:./`, the abbreviated form of
// `scheme:<presentation ref>_`.
var refShorthand = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*):\./`)

// ExpandRefShorthand rewrites every `scheme:./suffix` in a raw document to
// `scheme:<ref>_suffix`, where ref is the presentation reference declared in
// the document itself (`ref` or `meta.ref`). Documents without the shorthand
// are returned unchanged.
func ExpandRefShorthand(data []byte) ([]byte, error) {
	if !refShorthand.Match(data) {
		return data, nil
	}
	ref, err := documentRef(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRefExpansion, err)
	}
	if ref == "" {
		return nil, fmt.Errorf("%w: document declares no ref", core.ErrRefExpansion)
	}
	return refShorthand.ReplaceAll(data, []byte("${1}:"+ref+"_")), nil
}

func documentRef(data []byte) (string, error) {
	var doc struct {
		Ref  any `yaml:"ref"`
		Meta struct {
			Ref any `yaml:"ref"`
		} `yaml:"meta"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	for _, candidate := range []any{doc.Meta.Ref, doc.Ref} {
		if candidate == nil {
			continue
		}
		s, err := core.CoerceString(candidate)
		if err != nil {
			return "", fmt.Errorf("ref: %w", err)
		}
		return s.(string), nil
	}
	return "", nil
}
