package masters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/lectern/pkg/core"
)

var question = &core.Master{
	Name:        "question",
	DisplayName: "Question",
	Icon:        core.Icon{Name: "question", Color: "yellow"},
	Fields: core.Contract{
		"heading":   {Coerce: core.CoerceString, Markup: true},
		"questions": {Required: true, Markup: true, Description: "One or more questions with optional answers"},
	},
	NormalizeFieldsInput: func(raw any) (any, error) {
		switch t := raw.(type) {
		case string, []any:
			return map[string]any{"questions": t}, nil
		case map[string]any:
			if _, ok := t["question"]; ok {
				return map[string]any{"questions": []any{t}}, nil
			}
		}
		return raw, nil
	},
	CollectFieldsOnInstantiation: func(f core.Fields) (core.Fields, error) {
		items, err := normalizeQuestions(f["questions"])
		if err != nil {
			return nil, err
		}
		f["questions"] = items
		return f, nil
	},
	CollectStepsOnInstantiation: func(f core.Fields, steps *core.StepCollector) {
		for i, q := range mappingList(f["questions"]) {
			n := strconv.Itoa(i + 1)
			steps.Add(n + ". " + core.Shorten(q["question"].(string), stepTitleLength))
			if a, ok := q["answer"].(string); ok && a != "" {
				steps.Add(n + ". " + core.Shorten(a, stepTitleLength))
			}
		}
	},
	DeriveTitleFromFields: func(f core.Fields) string {
		return core.PlainText(f.String("heading"))
	},
	DerivePlainTextFromFields: func(f core.Fields) string {
		var parts []string
		for _, q := range mappingList(f["questions"]) {
			parts = append(parts, q["question"].(string))
			if a, ok := q["answer"].(string); ok {
				parts = append(parts, a)
			}
		}
		return joinPlain(parts...)
	},
	GenerateMarkupExport: func(f core.Fields) string {
		var b strings.Builder
		for i, q := range mappingList(f["questions"]) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q["question"])
			if a, ok := q["answer"].(string); ok && a != "" {
				fmt.Fprintf(&b, "   *%s*\n", a)
			}
		}
		return strings.TrimSuffix(b.String(), "\n")
	},
}

// normalizeQuestions accepts a single question text, a list of texts or a
// list of {question, answer} mappings and returns the mapping form.
func normalizeQuestions(v any) ([]any, error) {
	var list []any
	switch t := v.(type) {
	case string:
		list = []any{t}
	case []any:
		list = t
	default:
		return nil, fmt.Errorf("%w: questions must be text or a list, got %T", core.ErrInvalidValue, v)
	}

	out := make([]any, 0, len(list))
	for i, item := range list {
		switch q := item.(type) {
		case string:
			out = append(out, map[string]any{"question": q})
		case map[string]any:
			if err := checkKeys(q, "question", "answer"); err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			text, ok := q["question"].(string)
			if !ok || text == "" {
				return nil, fmt.Errorf("question %d: %w: %q", i+1, core.ErrMissingField, "question")
			}
			entry := map[string]any{"question": text}
			if a, ok := q["answer"]; ok && a != nil {
				s, err := core.CoerceString(a)
				if err != nil {
					return nil, fmt.Errorf("question %d: %w: %v", i+1, core.ErrInvalidValue, err)
				}
				entry["answer"] = s
			}
			out = append(out, entry)
		default:
			return nil, fmt.Errorf("question %d: %w: unexpected %T", i+1, core.ErrInvalidValue, item)
		}
	}
	return out, nil
}
