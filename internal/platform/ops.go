package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/lectern/pkg/adapters/fs"
	lsource "github.com/aretw0/lectern/pkg/adapters/lifecycle"
	"github.com/aretw0/lectern/pkg/core"
	"github.com/aretw0/lectern/pkg/presentation"
)

// DefaultPattern identifies presentation files below a project root.
const DefaultPattern = "**/*.lectern.{yml,yaml,json}"

// Discover lists the presentation files below root matching the configured
// pattern, as sorted slash separated paths relative to root.
func Discover(root string, opts ...Option) ([]string, error) {
	o := applyOptions(opts)
	if !doublestar.ValidatePattern(o.pattern) {
		return nil, fmt.Errorf("invalid pattern %q", o.pattern)
	}

	systemDir := o.systemDir
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	var found []string
	err := doublestar.GlobWalk(os.DirFS(root), o.pattern, func(path string, d os.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		for _, part := range strings.Split(path, "/") {
			if part == systemDir || part == ".git" {
				return nil
			}
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover presentations: %w", err)
	}
	slices.Sort(found)
	return found, nil
}

// Update is emitted by Watch whenever the watched presentation changes.
// Exactly one of Presentation and Err is set.
type Update struct {
	Event        core.Event
	Presentation *presentation.Presentation
	Err          error
}

// Watch reparses the presentation at path on every change and emits the
// result. With resolve set the new version is also resolved. The channel is
// closed when ctx is cancelled.
func Watch(ctx context.Context, path string, resolve bool, opts ...Option) (<-chan Update, error) {
	o := applyOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	events, err := fs.Watch(ctx, fs.WatchConfig{
		Root:         filepath.Dir(abs),
		Pattern:      escapePattern(filepath.Base(abs)),
		SystemDir:    o.systemDir,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err != nil {
		return nil, err
	}

	source := lsource.NewSource(events)
	if err := source.Start(ctx); err != nil {
		return nil, err
	}

	updates := make(chan Update)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(updates)
		for e := range source.Events() {
			event, ok := e.(core.Event)
			if !ok {
				continue
			}
			update := Update{Event: event}
			if event.Type == core.EventDelete {
				update.Err = fmt.Errorf("%s: %w", path, os.ErrNotExist)
			} else if resolve {
				update.Presentation, update.Err = Load(ctx, abs, opts...)
			} else {
				update.Presentation, update.Err = Open(abs, opts...)
			}
			select {
			case updates <- update:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
	return updates, nil
}

// escapePattern quotes the doublestar meta characters of a file name.
func escapePattern(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
