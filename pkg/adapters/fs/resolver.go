package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/lectern/pkg/core"
)

// SidecarPattern matches info files next to their media asset, e.g.
// `Bach.mp3.yml` describing `Bach.mp3`.
const SidecarPattern = "**/*.*.{yml,yaml}"

// DefaultSystemDir holds the sidecar cache below the media root.
const DefaultSystemDir = ".lectern"

// ResolverConfig holds the configuration of the filesystem resolver.
type ResolverConfig struct {
	// Root is the media root directory.
	Root string
	// SystemDir is the cache directory below Root (default ".lectern").
	SystemDir string
	// Concurrency bounds the parallel sidecar parses and asset lookups
	// (default GOMAXPROCS).
	Concurrency int
	Logger      *slog.Logger
}

// asset is one media file known from its sidecar.
type asset struct {
	path  string
	entry *indexEntry
}

// Resolver implements core.Resolver over a media directory. Assets are
// addressed as `ref:<ref>` or `uuid:<uuid>` as declared in their sidecars.
type Resolver struct {
	config ResolverConfig
	cache  *cache

	mu       sync.RWMutex
	byRef    map[string]*asset
	byUUID   map[string]*asset
	scanned  bool
	lastScan *time.Time
}

// NewResolver creates a resolver for config.Root. Sidecars are scanned
// lazily on the first Resolve or explicitly with Scan.
func NewResolver(config ResolverConfig) *Resolver {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		config: config,
		cache:  newCache(config.Root, config.SystemDir),
	}
}

// Scan discovers all sidecars below the media root and rebuilds the lookup
// tables. Unchanged sidecars are taken from the cache.
func (r *Resolver) Scan(ctx context.Context) error {
	if err := r.cache.Load(); err != nil {
		r.config.Logger.Warn("sidecar cache unreadable", "error", err)
	}

	root := os.DirFS(r.config.Root)
	matches, err := doublestar.Glob(root, SidecarPattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("failed to discover sidecars: %w", err)
	}

	var (
		mu     sync.Mutex
		assets []*asset
		seen   = make(map[string]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for _, rel := range matches {
		if isSystemPath(rel, r.config.SystemDir) {
			continue
		}
		assetRel := strings.TrimSuffix(rel, path.Ext(rel))
		if info, err := fs.Stat(root, assetRel); err != nil || info.IsDir() {
			// A YAML file without a media file next to it, e.g. a presentation.
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := r.loadSidecar(root, rel, assetRel)
			if err != nil {
				r.config.Logger.Warn("skipping sidecar", "path", rel, "error", err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			seen[rel] = true
			assets = append(assets, &asset{
				path:  filepath.Join(r.config.Root, filepath.FromSlash(assetRel)),
				entry: entry,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byRef := make(map[string]*asset, len(assets))
	byUUID := make(map[string]*asset, len(assets))
	slices.SortFunc(assets, func(a, b *asset) int { return strings.Compare(a.path, b.path) })
	for _, a := range assets {
		if prev, dup := byRef[a.entry.Ref]; dup {
			r.config.Logger.Warn("duplicate asset ref", "ref", a.entry.Ref, "path", a.path, "first", prev.path)
			continue
		}
		byRef[a.entry.Ref] = a
		byUUID[a.entry.UUID] = a
	}

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil {
		r.config.Logger.Warn("failed to save sidecar cache", "error", err)
	}

	now := time.Now()
	r.mu.Lock()
	r.byRef = byRef
	r.byUUID = byUUID
	r.scanned = true
	r.lastScan = &now
	r.mu.Unlock()

	r.config.Logger.Debug("sidecars scanned", "root", r.config.Root, "assets", len(byRef))
	return nil
}

func (r *Resolver) loadSidecar(root fs.FS, rel, assetRel string) (*indexEntry, error) {
	info, err := fs.Stat(root, rel)
	if err != nil {
		return nil, err
	}
	if entry, hit := r.cache.Get(rel, info.ModTime()); hit {
		return entry, nil
	}

	f, err := root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, err := NewYAMLSerializer().Decode(f)
	if err != nil {
		return nil, err
	}
	entry, err := newIndexEntry(meta, assetRel)
	if err != nil {
		return nil, err
	}
	entry.LastModified = info.ModTime()
	r.cache.Set(rel, entry)
	return entry, nil
}

// newIndexEntry splits the identity keys off a sidecar mapping. A missing
// ref defaults to the asset file name without extension; a missing uuid is
// derived from the asset path so it stays stable across scans.
func newIndexEntry(meta core.Fields, assetRel string) (*indexEntry, error) {
	entry := &indexEntry{Meta: meta.Clone()}

	if v, ok := entry.Meta["ref"]; ok {
		s, err := core.CoerceString(v)
		if err != nil {
			return nil, fmt.Errorf("ref: %w", err)
		}
		entry.Ref = s.(string)
		delete(entry.Meta, "ref")
	}
	if entry.Ref == "" {
		base := path.Base(assetRel)
		entry.Ref = strings.TrimSuffix(base, path.Ext(base))
	}

	if v, ok := entry.Meta["uuid"]; ok {
		s, _ := v.(string)
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("uuid: %w", err)
		}
		entry.UUID = id.String()
		delete(entry.Meta, "uuid")
	} else {
		entry.UUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("lectern:"+assetRel)).String()
	}
	return entry, nil
}

func isSystemPath(rel, systemDir string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == systemDir || part == ".git" {
			return true
		}
	}
	return false
}

// Resolve implements core.Resolver. URIs that are unknown, use an
// unsupported scheme, or whose media file disappeared are unresolved.
func (r *Resolver) Resolve(ctx context.Context, uris []string, required bool) ([]*core.Asset, error) {
	r.mu.RLock()
	scanned := r.scanned
	r.mu.RUnlock()
	if !scanned {
		if err := r.Scan(ctx); err != nil {
			return nil, err
		}
	}

	results := make([]*core.Asset, len(uris))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for i, uri := range uris {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := r.lookup(uri)
			if err != nil {
				r.config.Logger.Debug("media not resolved", "uri", uri, "error", err)
				return nil
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var assets []*core.Asset
	var missing []string
	for i, a := range results {
		if a == nil {
			missing = append(missing, uris[i])
			continue
		}
		assets = append(assets, a)
	}
	if required && len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrUnresolvedMedia, strings.Join(missing, ", "))
	}
	return assets, nil
}

var errUnknownAsset = errors.New("unknown asset")

func (r *Resolver) lookup(raw string) (*core.Asset, error) {
	u, ok := core.ParseURI(raw)
	if !ok {
		return nil, fmt.Errorf("malformed uri %q", raw)
	}

	if u.Scheme == "http" || u.Scheme == "https" {
		return remoteAsset(u)
	}

	r.mu.RLock()
	var a *asset
	switch u.Scheme {
	case "ref":
		a = r.byRef[u.Identifier]
	case "uuid":
		a = r.byUUID[strings.ToLower(u.Identifier)]
	default:
		r.mu.RUnlock()
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	r.mu.RUnlock()
	if a == nil {
		return nil, errUnknownAsset
	}

	if _, err := os.Stat(a.path); err != nil {
		return nil, err
	}
	return &core.Asset{
		URI:      u.Asset(),
		Ref:      a.entry.Ref,
		UUID:     a.entry.UUID,
		Path:     a.path,
		MimeType: mime.TypeByExtension(filepath.Ext(a.path)),
		Meta:     core.Fields(a.entry.Meta).Clone(),
	}, nil
}

// remoteAsset describes a web URI. It is not fetched; the content type is
// derived from the path extension.
func remoteAsset(u core.URI) (*core.Asset, error) {
	parsed, err := url.Parse(u.Asset())
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("malformed web uri %q", u.Asset())
	}
	return &core.Asset{
		URI:      u.Asset(),
		MimeType: mime.TypeByExtension(path.Ext(parsed.Path)),
		Meta:     core.Fields{},
	}, nil
}

var _ core.Resolver = (*Resolver)(nil)
