package core

import "context"

// Asset is a resolved media file.
type Asset struct {
	// URI is the reference the asset was requested with.
	URI      string `json:"uri"`
	Ref      string `json:"ref,omitempty"`
	UUID     string `json:"uuid,omitempty"`
	Path     string `json:"path,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Meta     Fields `json:"meta,omitempty"`
}

// Title returns the title declared in the asset metadata.
func (a *Asset) Title() string {
	return a.Meta.String("title")
}

// Sample is a named excerpt of an audio or video asset.
type Sample struct {
	Ref       string
	Title     string
	StartTime string
}

// Samples returns the samples declared in the asset metadata.
func (a *Asset) Samples() []Sample {
	list, _ := a.Meta["samples"].([]any)
	samples := make([]Sample, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case string:
			samples = append(samples, Sample{Title: t})
		case map[string]any:
			s := Sample{}
			s.Ref, _ = t["ref"].(string)
			s.Title, _ = t["title"].(string)
			if v, ok := t["startTime"]; ok {
				if str, err := CoerceString(v); err == nil {
					s.StartTime = str.(string)
				}
			}
			samples = append(samples, s)
		}
	}
	return samples
}

// Resolver resolves media URIs into assets.
//
// With required set, an unresolvable URI must fail the call. Otherwise the
// resolver silently omits what it cannot resolve.
type Resolver interface {
	Resolve(ctx context.Context, uris []string, required bool) ([]*Asset, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, uris []string, required bool) ([]*Asset, error)

func (f ResolverFunc) Resolve(ctx context.Context, uris []string, required bool) ([]*Asset, error) {
	return f(ctx, uris, required)
}

// MediaLookup gives post-resolution hooks read access to resolved assets.
type MediaLookup interface {
	// Asset returns the asset resolved for uri. Fragments are ignored.
	Asset(uri string) (*Asset, bool)
}

// AssetIndex is a MediaLookup keyed by fragment-less URI.
type AssetIndex map[string]*Asset

func (idx AssetIndex) Asset(uri string) (*Asset, bool) {
	a, ok := idx[StripFragment(uri)]
	return a, ok
}
