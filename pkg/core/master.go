package core

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Icon describes how a master is displayed.
type Icon struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Master is a named content variant: a field contract plus optional hooks.
// Hooks left nil are skipped. Masters are immutable once registered.
type Master struct {
	Name        string
	DisplayName string
	Icon        Icon
	Fields      Contract

	// ShortFormField receives a bare scalar given instead of a mapping.
	ShortFormField string

	// NormalizeFieldsInput reduces the accepted raw shapes (string, list,
	// mapping) to one canonical mapping.
	NormalizeFieldsInput func(raw any) (any, error)

	// CollectFieldsOnInstantiation derives the construction-time field data
	// from the normalized bag.
	CollectFieldsOnInstantiation func(fields Fields) (Fields, error)

	CollectStepsOnInstantiation func(fields Fields, steps *StepCollector)

	CollectMediaURIs         func(fields Fields) []string
	CollectOptionalMediaURIs func(fields Fields) []string

	// CollectFieldsAfterResolution returns replacement field data once media
	// has been resolved.
	CollectFieldsAfterResolution func(fields Fields, media MediaLookup) (Fields, error)
	CollectStepsAfterResolution  func(fields Fields, media MediaLookup, steps *StepCollector)

	DeriveTitleFromFields     func(fields Fields) string
	DerivePlainTextFromFields func(fields Fields) string
	GenerateMarkupExport      func(fields Fields) string
}

// Steps runs the instantiation step hook.
func (m *Master) Steps(fields Fields) []*Step {
	c := NewStepCollector()
	if m.CollectStepsOnInstantiation != nil {
		m.CollectStepsOnInstantiation(fields, c)
	}
	return c.Steps()
}

// MediaURIs returns the required media URIs referenced by fields, without
// fragments, deduplicated in first-seen order.
//
// Without a CollectMediaURIs hook, the string values of fields marked as
// AssetURI are used.
func (m *Master) MediaURIs(fields Fields) []string {
	if m.CollectMediaURIs != nil {
		return dedupURIs(m.CollectMediaURIs(fields))
	}
	var uris []string
	for _, name := range m.Fields.Names() {
		if !m.Fields[name].AssetURI {
			continue
		}
		switch v := fields[name].(type) {
		case string:
			uris = append(uris, v)
		case []string:
			uris = append(uris, v...)
		}
	}
	return dedupURIs(uris)
}

// OptionalMediaURIs returns the media URIs whose absence is tolerated.
func (m *Master) OptionalMediaURIs(fields Fields) []string {
	if m.CollectOptionalMediaURIs == nil {
		return nil
	}
	return dedupURIs(m.CollectOptionalMediaURIs(fields))
}

// PlainText derives a plain text representation of fields. Without a hook,
// all string-valued top-level fields are joined.
func (m *Master) PlainText(fields Fields) string {
	if m.DerivePlainTextFromFields != nil {
		return m.DerivePlainTextFromFields(fields)
	}
	var parts []string
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, PlainText(s))
		}
	}
	return strings.Join(parts, " | ")
}

func (m *Master) String() string {
	return m.Name
}

func dedupURIs(uris []string) []string {
	if len(uris) == 0 {
		return nil
	}
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		u = StripFragment(strings.TrimSpace(u))
		if u == "" || slices.Contains(out, u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Registry is a read-only set of masters keyed by name.
type Registry struct {
	masters map[string]*Master
	names   []string
}

// NewRegistry builds a registry from a closed list of masters. Duplicate or
// empty names are programming errors and panic.
func NewRegistry(masters ...*Master) *Registry {
	r := &Registry{masters: make(map[string]*Master, len(masters))}
	for _, m := range masters {
		if m.Name == "" {
			panic("core: master without name")
		}
		if _, dup := r.masters[m.Name]; dup {
			panic(fmt.Sprintf("core: master %q registered twice", m.Name))
		}
		r.masters[m.Name] = m
		r.names = append(r.names, m.Name)
	}
	sort.Strings(r.names)
	return r
}

// Get returns the master registered under name.
func (r *Registry) Get(name string) (*Master, error) {
	m, ok := r.masters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaster, name)
	}
	return m, nil
}

// Has reports whether name is a registered master.
func (r *Registry) Has(name string) bool {
	_, ok := r.masters[name]
	return ok
}

// Names returns all master names sorted.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}
