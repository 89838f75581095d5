package site

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/panel"
	"github.com/ziadkadry99/guidebook/internal/route"
)

func testGuides() guide.Guides {
	return guide.Guides{
		{Slug: "about", Title: "About", MenuTitle: "About", Path: "about.md", Body: "# About\n\nHello.", EditURL: "https://example.com/edit/about.md"},
		{Slug: "quickstart", Title: "Quickstart", MenuTitle: "Quickstart", Path: "quickstart.md", Body: "# Quickstart\n\n```go\nfmt.Println(1)\n```"},
		{Slug: "routing", Title: "Routing", MenuTitle: "Routing", Path: "routing.md", Body: "# Routing"},
	}
}

func parse(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestGenerateWritesAllPages(t *testing.T) {
	out := t.TempDir()
	gen := NewGenerator(out, "Guides", app.Light)

	n, err := gen.Generate(context.Background(), testGuides())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, rel := range []string{
		"index.html",
		"404.html",
		"static/style.css",
		"guide/about/index.html",
		"guide/quickstart/index.html",
		"guide/routing/index.html",
	} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		assert.NoError(t, err, "expected %s", rel)
	}
}

func TestGeneratePagesArePrerendered(t *testing.T) {
	out := t.TempDir()
	_, err := NewGenerator(out, "Guides", app.Dark).Generate(context.Background(), testGuides())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "guide", "quickstart", "index.html"))
	require.NoError(t, err)
	doc := parse(t, data)

	assert.True(t, doc.Find("html").HasClass("dark"))
	assert.Equal(t, "Quickstart | Guides", doc.Find("title").Text())

	top := doc.Find("#" + panel.Top.ElementID())
	assert.Equal(t, 1, top.Find(".rotate").Length(), "spinner shown while prerendering")
	assert.Contains(t, top.Text(), "Light mode")

	prev, _ := top.Find(`a[href="/guide/about"]`).Attr("href")
	assert.Equal(t, "/guide/about", prev)
	next, _ := top.Find(`a[href="/guide/routing"]`).Attr("href")
	assert.Equal(t, "/guide/routing", next)

	assert.Equal(t, 1, doc.Find("#"+ContentID+" pre").Length())
}

func TestGeneratePagesToggleModeInBrowser(t *testing.T) {
	out := t.TempDir()
	_, err := NewGenerator(out, "Guides", app.Dark).Generate(context.Background(), testGuides())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "guide", "about", "index.html"))
	require.NoError(t, err)
	doc := parse(t, data)
	root := doc.Find("#app")

	signals, _ := root.Attr("data-signals")
	assert.JSONEq(t, `{"mode":"dark"}`, signals)

	init, ok := root.Attr("data-init")
	require.True(t, ok)
	assert.Contains(t, init, ".rotate")
	assert.NotContains(t, init, "/updates/", "static pages do not subscribe")

	effect, _ := root.Attr("data-effect")
	assert.Contains(t, effect, "classList.toggle('dark', $mode == 'dark')")
	assert.Contains(t, effect, "'Light mode' : 'Dark mode'")

	toggle, ok := doc.Find("#" + panel.Top.ElementID() + " .cursor-pointer").Attr("data-on:click")
	require.True(t, ok)
	assert.Contains(t, toggle, "$mode")
	assert.NotContains(t, toggle, "@post")
	assert.NotContains(t, string(data), "/messages/")
}

func TestGenerateIndexRedirectsToFirstGuide(t *testing.T) {
	out := t.TempDir()
	_, err := NewGenerator(out, "Guides", app.Light).Generate(context.Background(), testGuides())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	content, _ := parse(t, data).Find(`meta[http-equiv="refresh"]`).Attr("content")
	assert.Equal(t, "0; url=/guide/about", content)
}

func TestGenerateNoGuides(t *testing.T) {
	_, err := NewGenerator(t.TempDir(), "Guides", app.Light).Generate(context.Background(), nil)
	assert.ErrorIs(t, err, guide.ErrNoGuides)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(t.TempDir(), "Guides", app.Light).Generate(ctx, testGuides())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageIsDeterministic(t *testing.T) {
	gs := testGuides()
	page := Page{
		SiteTitle: "Guides",
		Guide:     gs[1],
		Snapshot:  panel.Snapshot{Guides: gs, Mode: app.Light},
		Content:   "<p>hi</p>",
		Live:      true,
	}

	var a, b bytes.Buffer
	require.NoError(t, page.Render(context.Background(), &a))
	require.NoError(t, page.Render(context.Background(), &b))
	assert.Equal(t, a.String(), b.String())
	assert.True(t, strings.HasPrefix(a.String(), "<!DOCTYPE html>"))

	doc := parse(t, a.Bytes())
	assert.False(t, doc.Find("html").HasClass("dark"))
	init, ok := doc.Find("#app").Attr("data-init")
	assert.True(t, ok)
	assert.Contains(t, init, "/updates/quickstart")
}

func TestNotFoundPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NotFoundPage{SiteTitle: "Guides", Mode: app.Dark, Home: route.Home()}.Render(context.Background(), &buf))

	doc := parse(t, buf.Bytes())
	assert.True(t, doc.Find("html").HasClass("dark"))
	assert.Equal(t, "Page not found", doc.Find("h1").Text())
	href, _ := doc.Find("a").Attr("href")
	assert.Equal(t, "/", href)
}
