// Package core holds the presentation domain: field contracts, masters, the
// normalization engine, steps and the resolver contract.
package core

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Fields is a weakly-typed field bag. It is the shape of slide data before
// and after normalization; only hooks materialize typed records from it.
type Fields map[string]any

// Clone returns a deep copy of the bag.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return cloneValue(map[string]any(f)).(map[string]any)
}

// String returns the string value of key, or "" if absent or not a string.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Int returns the integer value of key, or 0.
func (f Fields) Int(key string) int {
	n, err := CoerceInt(f[key])
	if err != nil {
		return 0
	}
	return n.(int)
}

// Bool returns the boolean value of key, or false.
func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)
	return b
}

// Has reports whether key is present (even with a nil value).
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Fields:
		return Fields(cloneValue(map[string]any(t)).(map[string]any))
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = cloneValue(val)
		}
		return l
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}

// FieldDefinition describes one recognized field of a master.
type FieldDefinition struct {
	Default     any
	Description string
	Required    bool
	// Markup fields are converted from Markdown to HTML.
	Markup bool
	// AssetURI fields hold media URIs.
	AssetURI bool
	Coerce   func(any) (any, error)
	Validate func(any) bool
}

// Contract maps field names to their definitions.
type Contract map[string]FieldDefinition

// Names returns the field names in lexical order.
func (c Contract) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// --- Coercions ---

// CoerceInt accepts integers, integral floats and numeric strings.
func CoerceInt(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t != float64(int(t)) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", t)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert %T to integer", v)
}

// CoerceBool accepts booleans and the strings true/false/yes/no.
func CoerceBool(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", t)
	}
	return nil, fmt.Errorf("cannot convert %T to boolean", v)
}

// CoerceString renders scalars as strings. Mappings and lists are rejected.
func CoerceString(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), nil
	}
	return nil, fmt.Errorf("cannot convert %T to string", v)
}

// CoerceStringList accepts a list of scalars or a whitespace separated string.
func CoerceStringList(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return strings.Fields(t), nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := CoerceString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s.(string))
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot convert %T to string list", v)
}

// --- Validators ---

// OneOf accepts only the given string values.
func OneOf(values ...string) func(any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && slices.Contains(values, s)
	}
}

// MatchPattern accepts strings fully matching the expression.
func MatchPattern(expr string) func(any) bool {
	re := regexp.MustCompile("^(?:" + expr + ")$")
	return func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}
}
