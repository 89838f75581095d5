package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/logging"
	"github.com/ziadkadry99/guidebook/internal/panel"
	"github.com/ziadkadry99/guidebook/internal/route"
	"github.com/ziadkadry99/guidebook/internal/site"
)

// guideItem is one entry in the /api/guides response.
type guideItem struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	MenuTitle string `json:"menu_title"`
	Route     string `json:"route"`
}

func (s *Server) handleAPIGuides(w http.ResponseWriter, r *http.Request) {
	guides := s.runtime.Guides()
	items := make([]guideItem, len(guides))
	for i, g := range guides {
		items[i] = guideItem{
			Slug:      g.Slug,
			Title:     g.Title,
			MenuTitle: g.MenuTitle,
			Route:     route.Guide(g.Slug).String(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Msg("encoding guides")
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	first, ok := s.runtime.Guides().First()
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	http.Redirect(w, r, route.Guide(first.Slug).String(), http.StatusFound)
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	rt := route.Parse(r.URL.EscapedPath())
	if rt.Kind != route.KindGuide {
		s.handleNotFound(w, r)
		return
	}

	model, err := s.runtime.Snapshot(r.Context(), SessionID(r.Context()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	g, ok := model.Guides.BySlug(rt.Slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	body, err := s.renderer.Render(g)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	page := site.Page{
		SiteTitle: s.cfg.SiteTitle,
		Guide:     g,
		Snapshot:  panel.SnapshotOf(model),
		Content:   body,
		Live:      true,
	}
	s.renderHTML(w, r, http.StatusOK, page)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	mode := app.Light
	if model, err := s.runtime.Snapshot(r.Context(), SessionID(r.Context())); err == nil {
		mode = model.Mode
	}
	page := site.NotFoundPage{SiteTitle: s.cfg.SiteTitle, Mode: mode, Home: route.Home()}
	s.renderHTML(w, r, http.StatusNotFound, page)
}

// handleMessage applies a panel message for the caller's session and patches
// the page with the resulting panels.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := app.ParseMsg(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Read signals before creating the SSE generator; it consumes the body.
	var signals site.Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		log := logging.FromContext(r.Context())
		log.Debug().Err(err).Msg("message without signals")
	}

	model, err := s.runtime.Dispatch(r.Context(), SessionID(r.Context()), msg)
	if errors.Is(err, app.ErrStopped) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := s.patchPanels(sse, signals.Slug, model); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// handleUpdates streams panel and content patches whenever guides are
// reloaded or the session's state changes elsewhere.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	slug, err := route.UnescapeSlug(strings.TrimPrefix(r.URL.EscapedPath(), "/updates/"))
	if err != nil {
		http.Error(w, "invalid guide", http.StatusBadRequest)
		return
	}
	sse := datastar.NewSSE(w, r)

	updates := s.runtime.Notifier().Subscribe()
	defer s.runtime.Notifier().Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			model, err := s.runtime.Snapshot(ctx, SessionID(ctx))
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := s.patchPage(sse, slug, model); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (s *Server) patchPanels(sse *datastar.ServerSentEventGenerator, slug string, model app.Model) error {
	if g, ok := model.Guides.BySlug(slug); ok {
		snap := panel.SnapshotOf(model)
		for _, p := range []panel.Position{panel.Top, panel.Bottom} {
			if err := sse.PatchElementTempl(panel.View(g, p, snap)); err != nil {
				return err
			}
		}
	}
	return sse.ExecuteScript(modeScript(model.Mode))
}

func (s *Server) patchPage(sse *datastar.ServerSentEventGenerator, slug string, model app.Model) error {
	g, ok := model.Guides.BySlug(slug)
	if !ok {
		// The guide was removed or renamed.
		return sse.ExecuteScript("window.location.reload()")
	}
	body, err := s.renderer.Render(g)
	if err != nil {
		return err
	}
	if err := sse.PatchElementTempl(site.Content(body)); err != nil {
		return err
	}
	return s.patchPanels(sse, slug, model)
}

// modeScript syncs the root element's dark class with mode.
func modeScript(mode app.Mode) string {
	return fmt.Sprintf("document.documentElement.classList.toggle('dark', %t)", mode == app.Dark)
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Msg("rendering page")
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())
	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
