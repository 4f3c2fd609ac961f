package core

import (
	"regexp"
	"strings"
)

var uriPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):(.+)$`)

// URI is a media reference of the form scheme:identifier[#fragment].
type URI struct {
	Scheme     string
	Identifier string
	Fragment   string
}

// ParseURI splits raw into its parts. ok is false if raw is not a URI.
func ParseURI(raw string) (u URI, ok bool) {
	m := uriPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return URI{}, false
	}
	u.Scheme = strings.ToLower(m[1])
	u.Identifier = m[2]
	if i := strings.IndexByte(u.Identifier, '#'); i >= 0 {
		u.Fragment = u.Identifier[i+1:]
		u.Identifier = u.Identifier[:i]
	}
	return u, u.Identifier != ""
}

// IsURI reports whether raw looks like a media URI.
func IsURI(raw string) bool {
	_, ok := ParseURI(raw)
	return ok
}

// Asset returns the resolvable part, without the fragment.
func (u URI) Asset() string {
	return u.Scheme + ":" + u.Identifier
}

func (u URI) String() string {
	if u.Fragment == "" {
		return u.Asset()
	}
	return u.Asset() + "#" + u.Fragment
}

// StripFragment removes a trailing #fragment. A fragment selects a piece of
// an asset, so it never names a distinct asset to resolve.
func StripFragment(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}
