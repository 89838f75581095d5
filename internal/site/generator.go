package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/logging"
	"github.com/ziadkadry99/guidebook/internal/panel"
	"github.com/ziadkadry99/guidebook/internal/progress"
	"github.com/ziadkadry99/guidebook/internal/route"
)

// Generator prerenders every guide into a static site.
type Generator struct {
	OutputDir string
	SiteTitle string
	Mode      app.Mode
	Renderer  *guide.Renderer
	Reporter  progress.Reporter
}

// NewGenerator creates a Generator writing to outputDir.
func NewGenerator(outputDir, siteTitle string, mode app.Mode) *Generator {
	return &Generator{
		OutputDir: outputDir,
		SiteTitle: siteTitle,
		Mode:      mode,
		Renderer:  guide.NewRenderer(),
		Reporter:  progress.Nop{},
	}
}

// Generate writes one page per guide plus index.html, 404.html and the
// stylesheet. Returns the number of guide pages written.
func (g *Generator) Generate(ctx context.Context, guides guide.Guides) (int, error) {
	first, ok := guides.First()
	if !ok {
		return 0, guide.ErrNoGuides
	}

	log := logging.Component("generator")

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}
	if err := g.writeFile(filepath.Join("static", "style.css"), Stylesheet()); err != nil {
		return 0, err
	}

	snap := panel.Snapshot{Guides: guides, Mode: g.Mode, InPrerendering: true}

	g.Reporter.Start(len(guides))
	for i, gd := range guides {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		body, err := g.Renderer.Render(gd)
		if err != nil {
			return i, fmt.Errorf("rendering %s: %w", gd.Path, err)
		}

		file := route.Guide(gd.Slug).File()
		page := Page{SiteTitle: g.SiteTitle, Guide: gd, Snapshot: snap, Content: body, Static: true}
		if err := g.writePage(ctx, file, page); err != nil {
			return i, err
		}

		g.Reporter.PageWritten(i+1, file)
		log.Debug().Str("slug", gd.Slug).Msg("page written")
	}
	g.Reporter.Finish(g.OutputDir)

	if err := g.writePage(ctx, route.Home().File(), RedirectPage{Target: route.Guide(first.Slug)}); err != nil {
		return len(guides), err
	}
	notFound := NotFoundPage{SiteTitle: g.SiteTitle, Mode: g.Mode, Home: route.Home()}
	if err := g.writePage(ctx, route.NotFound().File(), notFound); err != nil {
		return len(guides), err
	}

	log.Info().Int("pages", len(guides)).Str("output", g.OutputDir).Msg("site generated")
	return len(guides), nil
}

func (g *Generator) writePage(ctx context.Context, rel string, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	return g.writeFile(rel, buf.Bytes())
}

func (g *Generator) writeFile(rel string, data []byte) error {
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
