package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/lectern/pkg/core"
)

func TestSerializers(t *testing.T) {
	doc := core.Fields{
		"meta": map[string]any{"title": "Baroque", "ref": "Baroque"},
		"slides": []any{
			"camera",
			map[string]any{"quote": map[string]any{"text": "Music is the arithmetic of sounds", "author": "Debussy"}},
		},
	}

	for ext, s := range DefaultSerializers() {
		t.Run(ext, func(t *testing.T) {
			data, err := s.Encode(doc)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			parsed, err := s.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			meta, ok := parsed["meta"].(map[string]any)
			if !ok || meta["title"] != "Baroque" {
				t.Errorf("meta lost: %#v", parsed["meta"])
			}
			slides, ok := parsed["slides"].([]any)
			if !ok || len(slides) != 2 || slides[0] != "camera" {
				t.Errorf("slides lost: %#v", parsed["slides"])
			}
		})
	}
}

func TestYAMLSerializer_NonStringKeys(t *testing.T) {
	doc, err := NewYAMLSerializer().Decode(strings.NewReader("title: T\nchords:\n  1: C\n  5: G\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	chords, ok := doc["chords"].(map[string]any)
	if !ok {
		t.Fatalf("expected string keyed mapping, got %T", doc["chords"])
	}
	if chords["5"] != "G" {
		t.Errorf("expected chords[5] = G, got %v", chords["5"])
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		ext  string
		data string
	}{
		{".json", "{ invalid"},
		{".yml", "title: [unclosed"},
		{".yml", "- just\n- a list\n"},
	}
	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			s, err := SerializerFor("deck" + tc.ext)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.Decode(strings.NewReader(tc.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSerializerFor(t *testing.T) {
	if _, err := SerializerFor("Praesentation.baldr.YML"); err != nil {
		t.Errorf("expected YAML serializer, got %v", err)
	}
	if _, err := SerializerFor("deck.csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
