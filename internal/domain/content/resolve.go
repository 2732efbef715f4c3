package content

import (
	"context"
	"net/url"
	"strings"
)

// Site describes the public site the store serves.
type Site struct {
	URL         string
	FrontPageID int64
	PostsPageID int64
}

// Owns reports whether rawURL points inside the site. An unset site URL owns everything.
func (s Site) Owns(rawURL string) bool {
	base := strings.TrimRight(strings.TrimSpace(s.URL), "/")
	if base == "" {
		return true
	}
	candidate := strings.TrimSpace(rawURL)
	return candidate == base || strings.HasPrefix(candidate, base+"/") || strings.HasPrefix(candidate, base+"?")
}

// Resolver maps public URLs to content ids.
type Resolver struct {
	site  Site
	store Store
}

// NewResolver constructs a Resolver.
func NewResolver(site Site, store Store) *Resolver {
	return &Resolver{site: site, store: store}
}

// Site returns the site configuration.
func (r *Resolver) Site() Site {
	return r.site
}

// LookupByURL resolves rawURL: exact permalink first, then the home page, then the
// slug of the full path, then the slug of the last path segment.
func (r *Resolver) LookupByURL(ctx context.Context, rawURL string) (int64, bool, error) {
	clean := StripQuery(rawURL)
	if clean == "" {
		return 0, false, nil
	}
	if id, ok, err := r.store.FindByURL(ctx, clean); err != nil || ok {
		return id, ok, err
	}
	if trimmed := strings.TrimRight(clean, "/"); trimmed != clean {
		if id, ok, err := r.store.FindByURL(ctx, trimmed); err != nil || ok {
			return id, ok, err
		}
	} else if id, ok, err := r.store.FindByURL(ctx, clean+"/"); err != nil || ok {
		return id, ok, err
	}

	path := ResolvePath(clean)
	if path == "" {
		switch {
		case r.site.FrontPageID > 0:
			return r.site.FrontPageID, true, nil
		case r.site.PostsPageID > 0:
			return r.site.PostsPageID, true, nil
		default:
			return 0, false, nil
		}
	}
	if id, ok, err := r.store.FindBySlug(ctx, path); err != nil || ok {
		return id, ok, err
	}
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	if last == path {
		return 0, false, nil
	}
	return r.store.FindBySlug(ctx, last)
}

// StripQuery removes the query string and fragment from rawURL.
func StripQuery(rawURL string) string {
	clean := strings.TrimSpace(rawURL)
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	return clean
}

// ResolvePath returns the URL path without surrounding slashes; "" means the home page.
func ResolvePath(rawURL string) string {
	parsed, err := url.Parse(StripQuery(rawURL))
	if err != nil {
		return ""
	}
	path := parsed.Path
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return strings.Trim(path, "/")
}

// ValidURL reports whether rawURL is an absolute http(s) URL.
func ValidURL(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
