package masters

import (
	"fmt"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

// stringList returns the string items of a []string or []any value.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{t}
	}
	return nil
}

// mappingList returns the mapping items of a []any value.
func mappingList(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func joinPlain(parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := core.PlainText(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " | ")
}

func checkKeys(item map[string]any, allowed ...string) error {
	for k := range item {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q", core.ErrUnknownField, k)
		}
	}
	return nil
}

// stepTitleLength bounds step titles derived from slide text.
const stepTitleLength = 40
