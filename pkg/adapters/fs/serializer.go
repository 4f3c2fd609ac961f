// Package fs provides the filesystem adapters: presentation document codecs,
// a media resolver backed by sidecar info files, and a file watcher.
package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lectern/pkg/core"
)

// Serializer defines how to read and write a specific document format.
type Serializer interface {
	// Decode reads a document mapping from r.
	Decode(r io.Reader) (core.Fields, error)
	// Encode converts a document mapping to bytes.
	Encode(doc core.Fields) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file
// extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor returns the serializer registered for the extension of path.
func SerializerFor(path string) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	s, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
	return s, nil
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON documents.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Decode(r io.Reader) (core.Fields, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return core.Fields(payload), nil
}

func (s *JSONSerializer) Encode(doc core.Fields) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML documents.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Decode(r io.Reader) (core.Fields, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	doc, err := core.AsFields(normalizeKeys(payload))
	if err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return doc, nil
}

func (s *YAMLSerializer) Encode(doc core.Fields) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(map[string]any(doc)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

// normalizeKeys converts mappings with non-string keys, which YAML allows
// (e.g. `1: one`), into string-keyed mappings so documents look the same
// whatever format they were read from.
func normalizeKeys(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = normalizeKeys(val)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = normalizeKeys(val)
		}
		return l
	default:
		return v
	}
}
