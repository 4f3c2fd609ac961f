package presentation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/masters"
)

// Status is the resolution state of a presentation.
type Status string

const (
	StatusParsed    Status = "parsed"
	StatusResolving Status = "resolving"
	StatusResolved  Status = "resolved"
	StatusFailed    Status = "failed"
)

// Presentation is a parsed presentation document: its metadata and slides.
type Presentation struct {
	Meta   Meta
	Slides *Collection

	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	err    error
	media  core.AssetIndex
}

// New builds a presentation from a decoded document.
func New(doc core.Fields, opts ...Option) (*Presentation, error) {
	o := &options{registry: masters.Registry()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	meta, err := parseMeta(doc)
	if err != nil {
		return nil, err
	}
	if o.path != "" {
		meta.Path = o.path
	}

	slides, err := newCollection(o.registry, doc["slides"])
	if err != nil {
		return nil, fmt.Errorf("presentation %q: %w", meta.Ref, err)
	}

	return &Presentation{
		Meta:   meta,
		Slides: slides,
		logger: o.logger.With("presentation", meta.Ref),
		status: StatusParsed,
	}, nil
}

// Parse expands reference shorthands in a YAML document, decodes it and
// builds the presentation.
func Parse(data []byte, opts ...Option) (*Presentation, error) {
	expanded, err := ExpandRefShorthand(data)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode presentation: %w", err)
	}
	doc, err := core.AsFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedMeta, err)
	}
	return New(doc, opts...)
}

// Status returns the current resolution state.
func (p *Presentation) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Err returns the error that moved the presentation to StatusFailed.
func (p *Presentation) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Media returns the assets resolved so far, keyed by fragment-less URI.
func (p *Presentation) Media() core.AssetIndex {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.media
}

// Resolve fetches the media of all slides and lets every master finalize
// its slide. Required URIs are resolved first and any failure aborts before
// optional URIs are requested or any slide is finalized. Optional URIs the
// resolver cannot provide are dropped.
//
// Resolve may only be called once, on a freshly parsed presentation.
func (p *Presentation) Resolve(ctx context.Context, resolver core.Resolver) error {
	p.mu.Lock()
	if p.status != StatusParsed {
		status := p.status
		p.mu.Unlock()
		return fmt.Errorf("%w: cannot resolve a %s presentation", core.ErrInvalidState, status)
	}
	p.status = StatusResolving
	p.mu.Unlock()

	media, err := p.resolve(ctx, resolver)
	if err != nil {
		p.logger.Error("resolution failed", "error", err)
		p.mu.Lock()
		p.status = StatusFailed
		p.err = err
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.status = StatusResolved
	p.media = media
	p.mu.Unlock()
	p.logger.Debug("resolution finished", "assets", len(media), "slides", p.Slides.Len())
	return nil
}

func (p *Presentation) resolve(ctx context.Context, resolver core.Resolver) (core.AssetIndex, error) {
	media := make(core.AssetIndex)

	if required := p.Slides.MediaURIs; len(required) > 0 {
		p.logger.Debug("resolving required media", "count", len(required))
		assets, err := resolver.Resolve(ctx, required, true)
		if err != nil {
			return nil, fmt.Errorf("resolve required media: %w", err)
		}
		indexAssets(media, assets)

		var missing []string
		for _, uri := range required {
			if _, ok := media.Asset(uri); !ok {
				missing = append(missing, uri)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrUnresolvedMedia, strings.Join(missing, ", "))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if optional := p.Slides.OptionalMediaURIs; len(optional) > 0 {
		p.logger.Debug("resolving optional media", "count", len(optional))
		assets, err := resolver.Resolve(ctx, optional, false)
		if err != nil {
			p.logger.Debug("optional media unavailable", "error", err)
		} else {
			indexAssets(media, assets)
		}
	}

	for _, s := range p.Slides.Flat {
		if err := s.finalize(media); err != nil {
			return nil, err
		}
	}
	return media, nil
}

func indexAssets(index core.AssetIndex, assets []*core.Asset) {
	for _, a := range assets {
		if a == nil {
			continue
		}
		index[core.StripFragment(a.URI)] = a
	}
}

// SlideByNo returns the slide with the 1-based sequence number no, or nil.
func (p *Presentation) SlideByNo(no int) *Slide {
	if no < 1 || no > len(p.Slides.Flat) {
		return nil
	}
	return p.Slides.Flat[no-1]
}

// SlideByRef returns the slide with the explicit reference ref, or nil.
func (p *Presentation) SlideByRef(ref string) *Slide {
	return p.Slides.WithRef[ref]
}

// FirstSlide returns the first slide, or nil for an empty presentation.
func (p *Presentation) FirstSlide() *Slide {
	return p.SlideByNo(1)
}

// ParentDir returns the directory of the source file, or "" if the
// presentation was not read from a file.
func (p *Presentation) ParentDir() string {
	if p.Meta.Path == "" {
		return ""
	}
	return filepath.Dir(p.Meta.Path)
}

// ExportMarkup renders the whole presentation as a Markdown document.
func (p *Presentation) ExportMarkup() string {
	var b strings.Builder
	b.WriteString("# " + p.Meta.Title + "\n")
	if p.Meta.Subtitle != "" {
		b.WriteString("\n*" + p.Meta.Subtitle + "*\n")
	}
	for _, s := range p.Slides.Flat {
		b.WriteString("\n---\n\n")
		b.WriteString(strings.Repeat("#", min(s.Level+1, 6)) + " " + s.Title() + "\n\n")
		b.WriteString(s.ExportMarkup() + "\n")
	}
	return b.String()
}

// PresentationState exposes the presentation for observability.
type PresentationState struct {
	Ref               string `json:"ref"`
	Title             string `json:"title"`
	Path              string `json:"path,omitempty"`
	Status            Status `json:"status"`
	Slides            int    `json:"slides"`
	MediaURIs         int    `json:"media_uris"`
	OptionalMediaURIs int    `json:"optional_media_uris"`
	ResolvedAssets    int    `json:"resolved_assets"`
	Error             string `json:"error,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Presentation) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := PresentationState{
		Ref:               p.Meta.Ref,
		Title:             p.Meta.Title,
		Path:              p.Meta.Path,
		Status:            p.status,
		Slides:            p.Slides.Len(),
		MediaURIs:         len(p.Slides.MediaURIs),
		OptionalMediaURIs: len(p.Slides.OptionalMediaURIs),
		ResolvedAssets:    len(p.media),
	}
	if p.err != nil {
		s.Error = p.err.Error()
	}
	return s
}

// ComponentType implements introspection.Component.
func (p *Presentation) ComponentType() string {
	return "presentation"
}

var _ introspection.Introspectable = (*Presentation)(nil)
var _ introspection.Component = (*Presentation)(nil)
