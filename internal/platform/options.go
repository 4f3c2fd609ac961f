package platform

import (
	"log/slog"

	"github.com/aretw0/lectern/pkg/core"
)

// options holds the internal configuration of the lectern services.
type options struct {
	logger       *slog.Logger
	resolver     core.Resolver
	mediaRoot    string
	systemDir    string
	concurrency  int
	pattern      string
	errorHandler func(error)
}

// Option defines a functional option for configuring lectern.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		pattern: DefaultPattern,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for parsing, resolution and watching.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResolver injects a custom media resolver (e.g. a mock or a remote
// media server). If provided, the filesystem resolver is skipped.
func WithResolver(r core.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithMediaRoot sets the directory the filesystem resolver searches for
// media files and their sidecars. Defaults to the project root of the
// presentation.
func WithMediaRoot(path string) Option {
	return func(o *options) {
		o.mediaRoot = path
	}
}

// WithSystemDir sets the hidden directory holding the sidecar cache.
// Defaults to ".lectern".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithConcurrency bounds the parallel work of the filesystem resolver.
// Zero means GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithPattern sets the doublestar pattern identifying presentation files.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher errors
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
