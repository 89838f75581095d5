package panel

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/view"
)

var (
	quickstart = guide.Guide{Slug: "quickstart", Title: "Quickstart", MenuTitle: "Quickstart", EditURL: "https://example.com/edit/quickstart.md"}
	routing    = guide.Guide{Slug: "routing", Title: "Routing", MenuTitle: "Routing", EditURL: "https://example.com/edit/routing.md"}
	views      = guide.Guide{Slug: "views", Title: "View Functions", MenuTitle: "Views", EditURL: "https://example.com/edit/views.md"}
	allGuides  = []guide.Guide{quickstart, routing, views}
)

func render(t *testing.T, selected guide.Guide, p Position, snap Snapshot) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(View(selected, p, snap).String()))
	require.NoError(t, err)
	root := doc.Find("#" + p.ElementID())
	require.Equal(t, 1, root.Length(), "panel root not found")
	return root
}

func columns(root *goquery.Selection) *goquery.Selection {
	return root.ChildrenFiltered("div")
}

func TestTopPanelMiddleGuide(t *testing.T) {
	root := render(t, routing, Top, Snapshot{Guides: allGuides, Mode: app.Light})

	assert.True(t, root.HasClass("mb-8"))
	assert.False(t, root.HasClass("mt-8"))
	require.Equal(t, 3, columns(root).Length())

	prev := columns(root).Eq(0).Find("a")
	href, _ := prev.Attr("href")
	assert.Equal(t, "/guide/quickstart", href)
	assert.Equal(t, "Quickstart", strings.TrimSpace(prev.Text()))

	next := columns(root).Eq(2).Find("a")
	href, _ = next.Attr("href")
	assert.Equal(t, "/guide/views", href)
	assert.Equal(t, "Views", strings.TrimSpace(next.Text()), "menu title, not full title")

	// Top shows the toggle, never the edit link.
	assert.Contains(t, columns(root).Eq(1).Text(), "Dark mode")
	assert.NotContains(t, root.Text(), "Edit this page")
}

func TestBottomPanelShowsEditAndFeedback(t *testing.T) {
	root := render(t, routing, Bottom, Snapshot{Guides: allGuides, Mode: app.Light})

	assert.True(t, root.HasClass("mt-8"))
	assert.NotContains(t, root.Text(), "mode")

	links := columns(root).Eq(1).Find("a")
	require.Equal(t, 2, links.Length())

	edit, _ := links.Eq(0).Attr("href")
	assert.Equal(t, routing.EditURL, edit)
	assert.Equal(t, "Edit this page", strings.TrimSpace(links.Eq(0).Text()))

	feedback, _ := links.Eq(1).Attr("href")
	assert.Equal(t, FeedbackURL, feedback)
	assert.Equal(t, "Feedback", strings.TrimSpace(links.Eq(1).Text()))

	assert.Contains(t, columns(root).Eq(1).Text(), "|")
}

func TestFirstGuideHasEmptyLeftColumn(t *testing.T) {
	root := render(t, quickstart, Top, Snapshot{Guides: allGuides})

	left := columns(root).Eq(0)
	assert.True(t, left.HasClass("flex-1"))
	assert.Equal(t, 0, left.Children().Length())

	href, _ := columns(root).Eq(2).Find("a").Attr("href")
	assert.Equal(t, "/guide/routing", href)
}

func TestLastGuideHasEmptyRightColumn(t *testing.T) {
	root := render(t, views, Bottom, Snapshot{Guides: allGuides})

	href, _ := columns(root).Eq(0).Find("a").Attr("href")
	assert.Equal(t, "/guide/routing", href)
	assert.Equal(t, 0, columns(root).Eq(2).Children().Length())
}

func TestUnknownGuideShowsNoNeighbors(t *testing.T) {
	stranger := guide.Guide{Slug: "elsewhere"}
	root := render(t, stranger, Top, Snapshot{Guides: allGuides})

	require.Equal(t, 3, columns(root).Length())
	assert.Equal(t, 0, columns(root).Eq(0).Children().Length())
	assert.Equal(t, 0, columns(root).Eq(2).Children().Length())
	assert.Equal(t, 0, root.Find("a").Length())
}

func TestToggleLabelNamesTargetMode(t *testing.T) {
	assert.Equal(t, "Dark mode", ToggleLabel(app.Light))
	assert.Equal(t, "Light mode", ToggleLabel(app.Dark))

	root := render(t, routing, Top, Snapshot{Guides: allGuides, Mode: app.Dark})
	assert.Contains(t, root.Text(), "Light mode")
	assert.NotContains(t, root.Text(), "Dark mode")
}

func TestToggleDeclaresClickBinding(t *testing.T) {
	root := render(t, routing, Top, Snapshot{Guides: allGuides})

	pill := root.Find(".cursor-pointer")
	require.Equal(t, 1, pill.Length())
	action, ok := pill.Attr("data-on:click")
	require.True(t, ok)
	assert.Contains(t, action, "/messages/toggle-mode")
}

func TestToggleBindingIsTheToggleMessage(t *testing.T) {
	n := View(routing, Top, Snapshot{Guides: allGuides})

	var bindings []string
	n.Walk(func(c view.Node) bool {
		for _, b := range c.Bindings {
			bindings = append(bindings, string(b.Event)+"->"+b.Msg.Name())
		}
		return true
	})
	assert.Equal(t, []string{"click->toggle-mode"}, bindings)
}

func TestSpinnerOnlyWhilePrerendering(t *testing.T) {
	root := render(t, routing, Top, Snapshot{Guides: allGuides, InPrerendering: true})
	spinner := root.Find(".rotate")
	require.Equal(t, 1, spinner.Length())
	assert.Equal(t, 1, spinner.Find("svg").Length())
	assert.Contains(t, root.Text(), "Dark mode", "label still shown next to the spinner")

	root = render(t, routing, Top, Snapshot{Guides: allGuides})
	assert.Equal(t, 0, root.Find(".rotate").Length())
}

func TestPreviousIconIsRotatedNextIcon(t *testing.T) {
	root := render(t, routing, Top, Snapshot{Guides: allGuides})

	prevIcon := columns(root).Eq(0).Find("a > div.h-8")
	nextIcon := columns(root).Eq(2).Find("a > div.h-8")
	require.Equal(t, 1, prevIcon.Length())
	require.Equal(t, 1, nextIcon.Length())

	style, _ := prevIcon.Attr("style")
	assert.Equal(t, "transform: rotate(180deg)", style)
	_, hasStyle := nextIcon.Attr("style")
	assert.False(t, hasStyle)

	prevSVG, err := goquery.OuterHtml(prevIcon.Find("svg"))
	require.NoError(t, err)
	nextSVG, err := goquery.OuterHtml(nextIcon.Find("svg"))
	require.NoError(t, err)
	assert.Equal(t, nextSVG, prevSVG)

	// Icon before title on the left, title before icon on the right.
	assert.True(t, columns(root).Eq(0).Find("a").Children().First().Is("div.h-8"))
	assert.True(t, columns(root).Eq(2).Find("a").Children().Last().Is("div.h-8"))
}

func TestTitlesHiddenOnNarrowViewports(t *testing.T) {
	root := render(t, routing, Top, Snapshot{Guides: allGuides})
	titles := root.Find(".sm\\:block")
	require.Equal(t, 2, titles.Length())
	titles.Each(func(_ int, s *goquery.Selection) {
		assert.True(t, s.HasClass("hidden"))
	})
}

func TestRenderIsIdempotent(t *testing.T) {
	snap := Snapshot{Guides: allGuides, Mode: app.Dark, InPrerendering: true}
	for _, p := range []Position{Top, Bottom} {
		first := View(routing, p, snap).String()
		second := View(routing, p, snap).String()
		assert.Equal(t, first, second)
		assert.Equal(t, View(routing, p, snap), View(routing, p, snap))
	}
}

func TestSingleGuideShowsNoLinks(t *testing.T) {
	root := render(t, quickstart, Top, Snapshot{Guides: []guide.Guide{quickstart}})
	assert.Equal(t, 0, root.Find("a").Length())
}

func TestSnapshotOf(t *testing.T) {
	m := app.Model{Guides: guide.Guides{quickstart}, Mode: app.Dark, InPrerendering: true}
	snap := SnapshotOf(m)
	assert.Equal(t, []guide.Guide{quickstart}, snap.Guides)
	assert.Equal(t, app.Dark, snap.Mode)
	assert.True(t, snap.InPrerendering)
}
