// Package lifecycle exposes presentation change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lectern/pkg/core"
)

type eventSource struct {
	in     <-chan core.Event
	out    chan lifecycle.Event
	accept func(core.Event) bool
	once   sync.Once
}

// SourceOption configures a source.
type SourceOption func(*eventSource)

// WithTypes only forwards events of the given types.
func WithTypes(types ...core.EventType) SourceOption {
	return func(s *eventSource) {
		s.accept = func(e core.Event) bool {
			for _, t := range types {
				if e.Type == t {
					return true
				}
			}
			return false
		}
	}
}

// NewSource wraps a presentation event channel. The returned source closes
// its Events channel when the input is closed or the start context ends.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &eventSource{
		in:     events,
		out:    make(chan lifecycle.Event),
		accept: func(core.Event) bool { return true },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start launches the forwarding goroutine. Subsequent calls are no-ops.
func (s *eventSource) Start(ctx context.Context) error {
	s.once.Do(func() {
		lifecycle.Go(ctx, s.forward)
	})
	return nil
}

func (s *eventSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.in:
			if !ok {
				return nil
			}
		}
		if !s.accept(e) {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
