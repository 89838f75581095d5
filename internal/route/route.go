// Package route maps guide slugs to navigable paths and back.
package route

import (
	"net/url"
	"path"
	"strings"
)

// Kind identifies the page a Route points at.
type Kind int

const (
	KindNotFound Kind = iota
	KindHome
	KindGuide
)

const guidePrefix = "/guide/"

// Route is a navigable location in the site.
type Route struct {
	Kind Kind
	Slug string
}

// Home is the site root.
func Home() Route { return Route{Kind: KindHome} }

// Guide is the page for the guide with the given slug.
func Guide(slug string) Route { return Route{Kind: KindGuide, Slug: slug} }

// NotFound is the fallback page.
func NotFound() Route { return Route{Kind: KindNotFound} }

// String returns the URL path of the route.
func (r Route) String() string {
	switch r.Kind {
	case KindHome:
		return "/"
	case KindGuide:
		return guidePrefix + EscapeSlug(r.Slug)
	default:
		return "/404"
	}
}

// File returns the static output file that serves the route when the site
// is prerendered.
func (r Route) File() string {
	switch r.Kind {
	case KindHome:
		return "index.html"
	case KindGuide:
		return path.Join("guide", r.Slug, "index.html")
	default:
		return "404.html"
	}
}

// EscapeSlug path-escapes each segment of slug, keeping the separators.
func EscapeSlug(slug string) string {
	segs := strings.Split(slug, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// UnescapeSlug reverses EscapeSlug.
func UnescapeSlug(escaped string) (string, error) {
	segs := strings.Split(escaped, "/")
	for i, s := range segs {
		u, err := url.PathUnescape(s)
		if err != nil {
			return "", err
		}
		segs[i] = u
	}
	return strings.Join(segs, "/"), nil
}

// Parse resolves an escaped URL path to a route. Unknown paths resolve to
// NotFound.
func Parse(p string) Route {
	if p == "" || p == "/" {
		return Home()
	}
	if !strings.HasPrefix(p, guidePrefix) {
		return NotFound()
	}
	slug := strings.Trim(strings.TrimPrefix(p, guidePrefix), "/")
	slug = strings.TrimSuffix(slug, "/index.html")
	if slug == "" || slug == "index.html" {
		return NotFound()
	}
	slug, err := UnescapeSlug(slug)
	if err != nil {
		return NotFound()
	}
	return Guide(slug)
}
