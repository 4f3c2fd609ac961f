package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/lectern/pkg/adapters/fs"
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/presentation"
)

// Open reads the presentation file at path, expands reference shorthands,
// decodes it according to its extension and builds the slide tree. No media
// is resolved.
func Open(path string, opts ...Option) (*presentation.Presentation, error) {
	o := applyOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	serializer, err := fs.SerializerFor(abs)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentation: %w", err)
	}

	expanded, err := presentation.ExpandRefShorthand(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := serializer.Decode(bytes.NewReader(expanded))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	p, err := presentation.New(doc,
		presentation.WithPath(abs),
		presentation.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if o.logger != nil {
		o.logger.Debug("presentation parsed", "path", abs, "ref", p.Meta.Ref, "slides", p.Slides.Len())
	}
	return p, nil
}

// Load opens the presentation at path and resolves its media.
func Load(ctx context.Context, path string, opts ...Option) (*presentation.Presentation, error) {
	p, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}

	if err := p.Resolve(ctx, ResolverFor(p, opts...)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// NewResolver returns the configured resolver: the injected one, or a
// filesystem resolver over the media root (default: the working directory).
func NewResolver(opts ...Option) core.Resolver {
	o := applyOptions(opts)
	if o.resolver != nil {
		return o.resolver
	}
	return newFSResolver(o, ".")
}

// ResolverFor returns the resolver Load uses for p: the injected one, or a
// filesystem resolver over the media root, which defaults to the project
// root around the presentation file.
func ResolverFor(p *presentation.Presentation, opts ...Option) core.Resolver {
	o := applyOptions(opts)
	if o.resolver != nil {
		return o.resolver
	}
	return newFSResolver(o, p.ParentDir())
}

func newFSResolver(o *options, dir string) *fs.Resolver {
	root := o.mediaRoot
	if root == "" {
		root = dir
		if found, err := FindRoot(dir); err == nil {
			root = found
		}
	}
	return fs.NewResolver(fs.ResolverConfig{
		Root:        root,
		SystemDir:   o.systemDir,
		Concurrency: o.concurrency,
		Logger:      o.logger,
	})
}

// ProjectOptions finds the project root above start and returns the options
// from its lectern.yml. Outside a project it returns no options.
func ProjectOptions(start string, logger *slog.Logger) ([]Option, error) {
	root, err := FindRoot(start)
	if errors.Is(err, ErrRootNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("project found", "root", root, "media", cfg.MediaRoot())
	}
	return cfg.Options(), nil
}
