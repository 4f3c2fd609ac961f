package lectern

import (
	"context"
	"log/slog"

	"github.com/aretw0/lectern/internal/platform"
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/presentation"
)

// --- Types ---

// Presentation is a parsed presentation document.
type Presentation = presentation.Presentation

// Slide is one node of the slide tree.
type Slide = presentation.Slide

// Update is emitted by Watch for every change of a presentation file.
type Update = platform.Update

// Config is the project configuration read from lectern.yml.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring Lectern.
type Option = platform.Option

// WithLogger sets the logger for parsing, resolution and watching.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithResolver injects a custom media resolver.
func WithResolver(r core.Resolver) Option {
	return platform.WithResolver(r)
}

// WithMediaRoot sets the directory searched for media files and sidecars.
func WithMediaRoot(path string) Option {
	return platform.WithMediaRoot(path)
}

// WithSystemDir sets the hidden directory name (e.g. ".lectern").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithConcurrency bounds the parallel work of the filesystem resolver.
func WithConcurrency(n int) Option {
	return platform.WithConcurrency(n)
}

// WithPattern sets the pattern identifying presentation files.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithWatcherErrorHandler registers a callback for runtime watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open parses the presentation at path without resolving media.
func Open(path string, opts ...Option) (*Presentation, error) {
	return platform.Open(path, opts...)
}

// Load parses the presentation at path and resolves its media.
func Load(ctx context.Context, path string, opts ...Option) (*Presentation, error) {
	return platform.Load(ctx, path, opts...)
}

// NewResolver returns the media resolver the options describe.
func NewResolver(opts ...Option) core.Resolver {
	return platform.NewResolver(opts...)
}

// ResolverFor returns the media resolver Load would use for p.
func ResolverFor(p *Presentation, opts ...Option) core.Resolver {
	return platform.ResolverFor(p, opts...)
}

// --- Operations ---

// Discover lists the presentation files below root.
func Discover(root string, opts ...Option) ([]string, error) {
	return platform.Discover(root, opts...)
}

// Watch emits a freshly parsed presentation on every change of the file at
// path. With resolve set, every version is also resolved.
func Watch(ctx context.Context, path string, resolve bool, opts ...Option) (<-chan Update, error) {
	return platform.Watch(ctx, path, resolve, opts...)
}

// --- Project ---

// FindRoot looks upwards from startDir for a project root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadConfig reads lectern.yml from the project root.
func LoadConfig(root string) (*Config, error) {
	return platform.LoadConfig(root)
}

// ProjectOptions returns the options configured for the project around start.
func ProjectOptions(start string, logger *slog.Logger) ([]Option, error) {
	return platform.ProjectOptions(start, logger)
}
