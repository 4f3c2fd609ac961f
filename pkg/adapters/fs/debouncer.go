package fs

import (
	"sync"
	"time"

	"github.com/aretw0/lectern/pkg/core"
)

// debouncer coalesces bursts of events per path. Only the last event of a
// burst is delivered, once the path has been quiet for the delay.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules deliver(e) and cancels any pending delivery for e.Path.
func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[e.Path]; ok && t.Stop() {
		d.pending.Done()
	}

	d.pending.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.pending.Done()
		d.mu.Lock()
		if d.timers[e.Path] == t {
			delete(d.timers, e.Path)
		}
		d.mu.Unlock()
		deliver(e)
	})
	d.timers[e.Path] = t
}

// stopAndWait drops pending events and waits up to timeout for deliveries
// already in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for path, t := range d.timers {
		if t.Stop() {
			d.pending.Done()
		}
		delete(d.timers, path)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
