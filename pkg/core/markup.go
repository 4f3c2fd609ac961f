package core

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// ConvertMarkup converts Markdown to HTML. A result consisting of a single
// paragraph is unwrapped so inline values stay inline, unless text already
// was that paragraph. Already converted HTML passes through unchanged.
func ConvertMarkup(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSpace(buf.String())
	if out == strings.TrimSpace(text) {
		return out, nil
	}
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// convertMarkupValue walks strings, lists and mappings.
func convertMarkupValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return ConvertMarkup(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			c, err := convertMarkupValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case []string:
		out := make([]string, len(t))
		for i, item := range t {
			c, err := ConvertMarkup(item)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case Fields:
		m, err := convertMarkupValue(map[string]any(t))
		if err != nil {
			return nil, err
		}
		return Fields(m.(map[string]any)), nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			c, err := convertMarkupValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	}
	return v, nil
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Li: true, atom.Div: true, atom.Tr: true,
	atom.Td: true, atom.Th: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Hr: true, atom.Blockquote: true,
}

// PlainText strips all tags from an HTML fragment and collapses whitespace.
func PlainText(fragment string) string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockAtoms[atom.Lookup(name)] {
				buf.WriteByte(' ')
			}
		}
	}
}

// Shorten returns the plain text of fragment cut at a word boundary so that
// it is at most maxLength characters long, ellipsis included.
func Shorten(fragment string, maxLength int) string {
	text := PlainText(fragment)
	if maxLength < 2 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxLength-1])
	if runes[maxLength-1] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimSpace(cut) + "…"
}

// SplitHTML groups the top-level nodes of fragment into chunks whose plain
// text does not exceed maxChars. A single node longer than maxChars forms
// its own chunk.
func SplitHTML(fragment string, maxChars int) ([]string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}

	var chunks []string
	var current bytes.Buffer
	currentLen := 0
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, n := range nodes {
		var node bytes.Buffer
		if err := html.Render(&node, n); err != nil {
			return nil, err
		}
		rendered := node.String()
		if strings.TrimSpace(rendered) == "" {
			current.WriteString(rendered)
			continue
		}
		size := utf8.RuneCountInString(PlainText(rendered))
		if currentLen > 0 && currentLen+size > maxChars {
			flush()
		}
		current.WriteString(rendered)
		currentLen += size
	}
	flush()
	return chunks, nil
}
