package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// ResolverState exposes internal state for observability.
type ResolverState struct {
	Root        string     `json:"root"`
	SystemDir   string     `json:"system_dir"`
	Concurrency int        `json:"concurrency"`
	Assets      int        `json:"assets"`
	CacheSize   int        `json:"cache_size"`
	LastScan    *time.Time `json:"last_scan,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Resolver) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return ResolverState{
		Root:        r.config.Root,
		SystemDir:   r.config.SystemDir,
		Concurrency: r.config.Concurrency,
		Assets:      len(r.byRef),
		CacheSize:   r.cache.Len(),
		LastScan:    r.lastScan,
	}
}

// ComponentType implements introspection.Component.
func (r *Resolver) ComponentType() string {
	return "resolver"
}

var _ introspection.Introspectable = (*Resolver)(nil)
var _ introspection.Component = (*Resolver)(nil)
