package presentation

import (
	"log/slog"

	"github.com/aretw0/lectern/pkg/core"
)

type options struct {
	path     string
	logger   *slog.Logger
	registry *core.Registry
}

// Option configures a Presentation.
type Option func(*options)

// WithPath records the file the document was read from. It overrides a
// `path` given in the document metadata.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithLogger sets the logger used during resolution.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry replaces the built-in master set.
func WithRegistry(registry *core.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}
