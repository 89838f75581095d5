// Package panel renders the guide control panel: previous/next guide links,
// the light/dark mode toggle and the edit-this-page links.
package panel

import (
	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/route"
	"github.com/ziadkadry99/guidebook/internal/view"
)

// FeedbackURL is where the Feedback link points.
const FeedbackURL = "https://github.com/seed-rs/seed/issues/303"

// Position is where a panel sits on the page.
type Position int

const (
	Top Position = iota
	Bottom
)

// ElementID returns the DOM id of the panel at p.
func (p Position) ElementID() string {
	if p == Top {
		return "control-panel-top"
	}
	return "control-panel-bottom"
}

// Snapshot is the read-only state one render needs.
type Snapshot struct {
	Guides         []guide.Guide
	Mode           app.Mode
	InPrerendering bool
}

// SnapshotOf extracts the render snapshot from an application model.
func SnapshotOf(m app.Model) Snapshot {
	return Snapshot{Guides: m.Guides, Mode: m.Mode, InPrerendering: m.InPrerendering}
}

// View renders the panel for selected at position p.
func View(selected guide.Guide, p Position, snap Snapshot) view.Node {
	spacing := "mt-8"
	if p == Top {
		spacing = "mb-8"
	}

	left := viewEmptyColumn()
	if prev, ok := guide.PreviousGuide(selected, snap.Guides); ok {
		left = viewPreviousGuideLink(prev)
	}

	var center view.Node
	if p == Top {
		center = viewModeToggle(snap.InPrerendering, snap.Mode)
	} else {
		center = viewEditThisPage(selected.EditURL)
	}

	right := viewEmptyColumn()
	if next, ok := guide.NextGuide(selected, snap.Guides); ok {
		right = viewNextGuideLink(next)
	}

	return view.Div(
		view.ID(p.ElementID()),
		view.Class(spacing, "w-full", "flex", "justify-between", "text-green-500", "text-sm", "lg:ml-auto"),
		left,
		center,
		right,
	)
}

func viewEmptyColumn() view.Node {
	return view.Div(view.Class("flex-1"))
}

func viewModeToggle(inPrerendering bool, mode app.Mode) view.Node {
	spinner := view.Empty()
	if inPrerendering {
		spinner = view.Div(view.Class("mr-1", "h-4", "w-4", "rotate"), spinnerIcon())
	}

	return view.Div(
		view.Class("flex-1", "flex", "justify-center"),
		view.Div(
			view.Class(
				"flex", "items-center", "px-3", "text-gray-500",
				"border", "border-gray-400", "cursor-pointer", "rounded-full",
				"hover:underline", "hover:text-gray-700", "hover:border-gray-600",
			),
			view.On(view.EventClick, app.ToggleMode),
			view.Span(
				view.Class("whitespace-no-wrap", "flex", "items-center"),
				spinner,
				view.Span(view.Text(ToggleLabel(mode))),
			),
		),
	)
}

// ToggleLabel names the mode a click on the toggle switches to.
func ToggleLabel(current app.Mode) string {
	return current.Toggle().Label() + " mode"
}

var linkClasses = []string{
	"flex", "items-center", "text-blue-500", "whitespace-no-wrap",
	"hover:underline", "hover:text-blue-700",
}

func viewEditThisPage(editURL string) view.Node {
	return view.Div(
		view.Class("flex-1", "flex", "justify-center"),
		view.A(
			view.Class(linkClasses...),
			view.Href(editURL),
			view.Span(view.Text("Edit this page")),
		),
		view.Span(view.Class("flex", "mx-1", "items-center"), view.Text("|")),
		view.A(
			view.Class(linkClasses...),
			view.Href(FeedbackURL),
			view.Span(view.Text("Feedback")),
		),
	)
}

var guideLinkClasses = []string{"flex", "hover:underline", "hover:text-green-700", "focus:outline-none"}

func viewGuideTitle(g guide.Guide) view.Node {
	return view.Div(
		view.Class("font-bold", "m-auto", "pb-1", "hidden", "sm:block"),
		view.Text(g.MenuTitle),
	)
}

func viewPreviousGuideLink(prev guide.Guide) view.Node {
	return view.Div(
		view.Class("flex-1", "flex", "justify-start"),
		view.A(
			view.Class(guideLinkClasses...),
			view.Href(route.Guide(prev.Slug).String()),
			viewPreviousIcon(),
			viewGuideTitle(prev),
		),
	)
}

func viewNextGuideLink(next guide.Guide) view.Node {
	return view.Div(
		view.Class("flex-1", "flex", "justify-end"),
		view.A(
			view.Class(guideLinkClasses...),
			view.Href(route.Guide(next.Slug).String()),
			viewGuideTitle(next),
			viewNextIcon(),
		),
	)
}

// The previous icon is the next icon turned around.
func viewPreviousIcon() view.Node {
	return view.Div(
		view.Class("h-8", "w-8"),
		view.Style("transform", "rotate(180deg)"),
		nextIcon(),
	)
}

func viewNextIcon() view.Node {
	return view.Div(view.Class("h-8", "w-8"), nextIcon())
}
