package site

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/panel"
	"github.com/ziadkadry99/guidebook/internal/route"
	"github.com/ziadkadry99/guidebook/internal/view"
)

// DatastarScript is the client runtime that turns panel bindings into requests.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// ContentID is the element id of the rendered guide body.
const ContentID = "guide-content"

// Page is a full HTML document for one guide.
type Page struct {
	SiteTitle string
	Guide     guide.Guide
	Snapshot  panel.Snapshot
	// Content is the sanitized guide body.
	Content string
	// Live pages subscribe to server pushes for their guide.
	Live bool
	// Static pages run the panel in the browser, with no server to post to.
	Static bool
}

var _ templ.Component = Page{}

// Render writes the document.
func (p Page) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if p.Static {
		ctx = view.WithEncoder(ctx, StaticEncoder)
	}
	return p.document().Render(ctx, w)
}

func (p Page) title() string {
	if p.Guide.Title == "" {
		return p.SiteTitle
	}
	return p.Guide.Title + " | " + p.SiteTitle
}

func (p Page) document() view.Node {
	return view.El("html",
		view.Attr("lang", "en"),
		htmlClass(p.Snapshot.Mode),
		view.El("head",
			view.El("meta", view.Attr("charset", "utf-8")),
			view.El("meta", view.Attr("name", "viewport"), view.Attr("content", "width=device-width, initial-scale=1")),
			view.El("title", view.Text(p.title())),
			view.El("link", view.Attr("rel", "stylesheet"), view.Href("/static/style.css")),
			view.El("script", view.Attr("type", "module"), view.Attr("src", DatastarScript)),
		),
		view.El("body",
			view.Class("font-sans", "antialiased"),
			p.body(),
		),
	)
}

func (p Page) body() view.Node {
	live := func(*view.Node) {}
	switch {
	case p.Live:
		live = func(n *view.Node) {
			view.Attr("data-signals", Signals{Slug: p.Guide.Slug}.String())(n)
			view.Attr("data-init", datastar.GetSSE("/updates/%s", route.EscapeSlug(p.Guide.Slug)))(n)
		}
	case p.Static:
		live = func(n *view.Node) {
			view.Attr("data-signals", Signals{Mode: p.Snapshot.Mode.String()}.String())(n)
			view.Attr("data-init", staticInit)(n)
			view.Attr("data-effect", staticEffect)(n)
		}
	}
	return view.Div(
		view.ID("app"),
		view.Class("container", "mx-auto", "px-4", "py-8", "max-w-3xl"),
		view.Option(live),
		panel.View(p.Guide, panel.Top, p.Snapshot),
		Content(p.Content),
		panel.View(p.Guide, panel.Bottom, p.Snapshot),
	)
}

// Signals is the client state datastar sends with every message. Static
// pages carry the mode instead of a slug.
type Signals struct {
	Slug string `json:"slug,omitempty"`
	Mode string `json:"mode,omitempty"`
}

func (s Signals) String() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// modeStorageKey keeps the visitor's mode across static pages.
const modeStorageKey = "guidebook-mode"

// staticInit restores the stored mode and drops the prerendering spinner.
var staticInit = fmt.Sprintf(
	"$mode = localStorage.getItem('%s') || $mode; el.querySelectorAll('.rotate').forEach(s => s.remove())",
	modeStorageKey,
)

// staticEffect applies $mode to the document whenever it changes.
var staticEffect = fmt.Sprintf(
	"document.documentElement.classList.toggle('dark', $mode == 'dark'); "+
		"localStorage.setItem('%s', $mode); "+
		"el.querySelectorAll('.cursor-pointer span > span:last-child').forEach(s => s.textContent = $mode == 'dark' ? '%s' : '%s')",
	modeStorageKey, panel.ToggleLabel(app.Dark), panel.ToggleLabel(app.Light),
)

// StaticEncoder binds panel messages to client-side signal updates.
// Messages with no client-side meaning are left unbound.
func StaticEncoder(b view.Binding) (string, string) {
	if b.Msg.Name() == app.ToggleMode.Name() {
		return "data-on:" + string(b.Event), "$mode = $mode == 'dark' ? 'light' : 'dark'"
	}
	return "", ""
}

// Content wraps a rendered guide body so it can be patched by id.
func Content(rendered string) view.Node {
	return view.El("article",
		view.ID(ContentID),
		view.Class("markdown"),
		view.Raw(rendered),
	)
}

// htmlClass marks the root element for dark styles.
func htmlClass(mode app.Mode) view.Option {
	if mode == app.Dark {
		return view.Class("dark")
	}
	return func(*view.Node) {}
}

// NotFoundPage is served for unknown routes.
type NotFoundPage struct {
	SiteTitle string
	Mode      app.Mode
	Home      route.Route
}

func (p NotFoundPage) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	doc := view.El("html",
		view.Attr("lang", "en"),
		htmlClass(p.Mode),
		view.El("head",
			view.El("meta", view.Attr("charset", "utf-8")),
			view.El("title", view.Text("Not found | "+p.SiteTitle)),
			view.El("link", view.Attr("rel", "stylesheet"), view.Href("/static/style.css")),
		),
		view.El("body",
			view.Class("font-sans", "antialiased"),
			view.Div(
				view.Class("container", "mx-auto", "px-4", "py-8", "max-w-3xl"),
				view.El("h1", view.Text("Page not found")),
				view.El("p", view.A(view.Href(p.Home.String()), view.Class("text-blue-500", "hover:underline"), view.Text("Back to the guides"))),
			),
		),
	)
	return doc.Render(ctx, w)
}

// RedirectPage sends static hosts from the site root to the first guide.
type RedirectPage struct {
	Target route.Route
}

func (p RedirectPage) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	target := p.Target.String()
	doc := view.El("html",
		view.El("head",
			view.El("meta", view.Attr("http-equiv", "refresh"), view.Attr("content", "0; url="+target)),
			view.El("link", view.Attr("rel", "canonical"), view.Href(target)),
		),
		view.El("body", view.A(view.Href(target), view.Text(target))),
	)
	return doc.Render(ctx, w)
}
