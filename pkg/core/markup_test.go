package core

import (
	"strings"
	"testing"
)

func TestConvertMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Inline Is Unwrapped", "Hello *world*", "Hello <em>world</em>"},
		{"Plain Text", "Step 1", "Step 1"},
		{"Already Converted", "Hello <em>world</em>", "Hello <em>world</em>"},
		{"Strikethrough", "~~old~~ new", "<del>old</del> new"},
		{"Two Paragraphs Stay Wrapped", "one\n\ntwo", "<p>one</p>\n<p>two</p>"},
		{"Paragraph Element Is Kept", "<p>one <em>two</em></p>", "<p>one <em>two</em></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertMarkup(tt.in)
			if err != nil {
				t.Fatalf("ConvertMarkup failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvertMarkupValue_Nested(t *testing.T) {
	in := map[string]any{
		"question": "What is *this*?",
		"answers":  []any{"**yes**", 42},
	}
	out, err := convertMarkupValue(in)
	if err != nil {
		t.Fatal(err)
	}
	m := out.(map[string]any)
	if m["question"] != "What is <em>this</em>?" {
		t.Errorf("question not converted: %q", m["question"])
	}
	answers := m["answers"].([]any)
	if answers[0] != "<strong>yes</strong>" {
		t.Errorf("answer not converted: %q", answers[0])
	}
	if answers[1] != 42 {
		t.Errorf("non-string value changed: %v", answers[1])
	}
}

func TestPlainTextAndShorten(t *testing.T) {
	if got := PlainText("<p>one</p><p>two <em>three</em></p>"); got != "one two three" {
		t.Errorf("PlainText: got %q", got)
	}

	long := "The quick brown fox jumps over the lazy dog"
	got := Shorten(long, 20)
	if got != "The quick brown fox…" {
		t.Errorf("Shorten: got %q", got)
	}
	if Shorten("short", 20) != "short" {
		t.Errorf("Shorten must keep short text untouched")
	}
}

func TestSplitHTML(t *testing.T) {
	fragment := "<p>" + strings.Repeat("a", 30) + "</p>\n<p>" + strings.Repeat("b", 30) + "</p>\n<p>c</p>"

	chunks, err := SplitHTML(fragment, 40)
	if err != nil {
		t.Fatalf("SplitHTML failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if !strings.Contains(chunks[1], "bbb") || !strings.Contains(chunks[1], "<p>c</p>") {
		t.Errorf("unexpected second chunk: %q", chunks[1])
	}

	single, err := SplitHTML("just text", 400)
	if err != nil {
		t.Fatal(err)
	}
	if len(single) != 1 || single[0] != "just text" {
		t.Errorf("unexpected single chunk: %q", single)
	}
}
