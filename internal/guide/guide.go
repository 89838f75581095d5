// Package guide loads documentation guides and answers ordering questions
// about them.
package guide

import "slices"

// Guide is a single documentation page. Guides are compared by value and
// never mutated after loading.
type Guide struct {
	Slug      string
	Title     string
	MenuTitle string
	EditURL   string
	Order     int
	Path      string // source file relative to the guides directory
	Body      string // markdown with frontmatter stripped
}

// Guides is an ordered guide list. The order defines previous/next adjacency.
type Guides []Guide

// PreviousGuide returns the guide immediately before selected in guides.
// It reports false when selected is first or is not in the list.
func PreviousGuide(selected Guide, guides []Guide) (Guide, bool) {
	i := slices.Index(guides, selected)
	if i <= 0 {
		return Guide{}, false
	}
	return guides[i-1], true
}

// NextGuide returns the guide immediately after selected in guides.
// It reports false when selected is last or is not in the list.
func NextGuide(selected Guide, guides []Guide) (Guide, bool) {
	i := slices.Index(guides, selected)
	if i < 0 || i+1 >= len(guides) {
		return Guide{}, false
	}
	return guides[i+1], true
}

// BySlug finds a guide by slug.
func (gs Guides) BySlug(slug string) (Guide, bool) {
	for _, g := range gs {
		if g.Slug == slug {
			return g, true
		}
	}
	return Guide{}, false
}

// First returns the first guide in list order.
func (gs Guides) First() (Guide, bool) {
	if len(gs) == 0 {
		return Guide{}, false
	}
	return gs[0], true
}
