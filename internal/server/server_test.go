package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/db"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/panel"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

type fixture struct {
	srv   *Server
	rt    *app.Runtime
	store *db.ModeStore
}

func newFixture(t *testing.T, cfg Config) fixture {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	guides := guide.Guides{
		{Slug: "about", Title: "About", MenuTitle: "About", Path: "about.md", Body: "# About"},
		{Slug: "quickstart", Title: "Quickstart", MenuTitle: "Quick start", Path: "quickstart.md", Body: "# Quickstart", EditURL: "https://example.com/edit/quickstart.md"},
		{Slug: "routing", Title: "Routing", MenuTitle: "Routing", Path: "routing.md", Body: "# Routing"},
	}

	store := db.NewModeStore(database)
	rt := app.NewRuntime(store, guides, app.Light)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = rt.Run(ctx) }()

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = testSecret
	}
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = "Guides"
	}
	return fixture{srv: New(cfg, rt, guide.NewRenderer()), rt: rt, store: store}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	f := newFixture(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := f.do(req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHomeRedirectsToFirstGuide(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/guide/about", w.Header().Get("Location"))
}

func TestGuidePage(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("GET", "/guide/quickstart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Result().Cookies(), "session cookie is issued")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.False(t, doc.Find("html").HasClass("dark"))
	assert.Equal(t, "Quickstart | Guides", doc.Find("title").Text())

	top := doc.Find("#" + panel.Top.ElementID())
	assert.Contains(t, top.Text(), "Dark mode")
	assert.Equal(t, 0, top.Find(".rotate").Length(), "no spinner on live pages")
	toggle, ok := top.Find(".cursor-pointer").Attr("data-on:click")
	require.True(t, ok)
	assert.Contains(t, toggle, "/messages/toggle-mode")

	bottom := doc.Find("#" + panel.Bottom.ElementID())
	href, _ := bottom.Find(`a:contains("Edit this page")`).Attr("href")
	assert.Equal(t, "https://example.com/edit/quickstart.md", href)

	signals, _ := doc.Find("#app").Attr("data-signals")
	assert.JSONEq(t, `{"slug":"quickstart"}`, signals)
}

func TestUnknownGuideIsNotFound(t *testing.T) {
	f := newFixture(t, Config{})

	for _, path := range []string{"/guide/missing", "/nowhere"} {
		w := f.do(httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Page not found", path)
	}
}

func TestToggleModeMessage(t *testing.T) {
	f := newFixture(t, Config{})

	page := f.do(httptest.NewRequest("GET", "/guide/quickstart", nil))
	cookies := page.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("POST", "/messages/toggle-mode", strings.NewReader(`{"slug":"quickstart"}`))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, panel.Top.ElementID())
	assert.Contains(t, body, panel.Bottom.ElementID())
	assert.Contains(t, body, "Light mode")
	assert.Contains(t, body, "classList.toggle('dark', true)")

	// The mode sticks for the session.
	req = httptest.NewRequest("GET", "/guide/quickstart", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = f.do(req)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.True(t, doc.Find("html").HasClass("dark"))

	n, err := f.store.CountSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNotFoundUsesSessionMode(t *testing.T) {
	f := newFixture(t, Config{})

	page := f.do(httptest.NewRequest("GET", "/guide/about", nil))
	cookies := page.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("POST", "/messages/toggle-mode", strings.NewReader(`{"slug":"about"}`))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	require.Equal(t, http.StatusOK, f.do(req).Code)

	for _, path := range []string{"/nowhere", "/guide/missing"} {
		req = httptest.NewRequest("GET", path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := f.do(req)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.True(t, doc.Find("html").HasClass("dark"), path)
	}
}

func TestGuideSlugWithReservedCharacters(t *testing.T) {
	f := newFixture(t, Config{})
	f.rt.SetGuides(guide.Guides{
		{Slug: "about", Title: "About", MenuTitle: "About", Path: "about.md", Body: "# About"},
		{Slug: "c#-basics", Title: "C# Basics", MenuTitle: "C# Basics", Path: "c#-basics.md", Body: "# C# Basics"},
	})

	w := f.do(httptest.NewRequest("GET", "/guide/about", nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	next, ok := doc.Find("#" + panel.Top.ElementID() + ` a:contains("C# Basics")`).Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/guide/c%23-basics", next)

	w = f.do(httptest.NewRequest("GET", next, nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc, err = goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "C# Basics | Guides", doc.Find("title").Text())
	init, _ := doc.Find("#app").Attr("data-init")
	assert.Contains(t, init, "/updates/c%23-basics")
}

func TestGuidePageFollowsReloadedGuides(t *testing.T) {
	f := newFixture(t, Config{})
	f.rt.SetGuides(guide.Guides{
		{Slug: "quickstart", Title: "Quickstart", MenuTitle: "Quickstart", Path: "quickstart.md", Body: "# Quickstart"},
		{Slug: "testing", Title: "Testing", MenuTitle: "Testing", Path: "testing.md", Body: "# Testing"},
	})

	w := f.do(httptest.NewRequest("GET", "/guide/quickstart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	top := doc.Find("#" + panel.Top.ElementID())
	assert.Equal(t, 0, top.Find(`a[href="/guide/about"]`).Length())
	assert.Equal(t, 1, top.Find(`a[href="/guide/testing"]`).Length())

	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest("GET", "/guide/routing", nil)).Code)
}

func TestToggleModeIsPerSession(t *testing.T) {
	f := newFixture(t, Config{})

	req := httptest.NewRequest("POST", "/messages/toggle-mode", strings.NewReader(`{"slug":"about"}`))
	require.Equal(t, http.StatusOK, f.do(req).Code)

	// A fresh visitor still gets the default mode.
	w := f.do(httptest.NewRequest("GET", "/guide/about", nil))
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.False(t, doc.Find("html").HasClass("dark"))
}

func TestUnknownMessage(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("POST", "/messages/explode", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown message")
}

func TestAPIGuides(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("GET", "/api/guides", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []guideItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, guideItem{Slug: "quickstart", Title: "Quickstart", MenuTitle: "Quick start", Route: "/guide/quickstart"}, items[1])
}

func TestStaticStylesheet(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(httptest.NewRequest("GET", "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".rotate")
}

func TestModeScript(t *testing.T) {
	assert.Equal(t, "document.documentElement.classList.toggle('dark', false)", modeScript(app.Light))
	assert.Equal(t, "document.documentElement.classList.toggle('dark', true)", modeScript(app.Dark))
}
