package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/logging"
	"github.com/ziadkadry99/guidebook/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port          int
	SiteTitle     string
	SessionSecret string
	AllowAll      bool // allow all CORS origins (dev mode)
}

// Server serves live guide pages and applies panel messages.
type Server struct {
	cfg      Config
	runtime  *app.Runtime
	renderer *guide.Renderer
	sessions *sessions.CookieStore
	router   chi.Router
}

// New creates a server over rt.
func New(cfg Config, rt *app.Runtime, renderer *guide.Renderer) *Server {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.MaxAge(86400 * 365)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		cfg:      cfg,
		runtime:  rt,
		renderer: renderer,
		sessions: store,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Datastar-Request"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/static/*", site.StaticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/api/guides", s.handleAPIGuides)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/", s.handleHome)
			r.Get("/guide/*", s.handleGuide)
			r.Post("/messages/{name}", s.handleMessage)
		})
	})

	// Update streams stay open for the lifetime of the page.
	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Get("/updates/*", s.handleUpdates)
	})

	r.NotFound(s.sessionMiddleware(http.HandlerFunc(s.handleNotFound)).ServeHTTP)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Serve listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log := logging.Component("server")

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	eg.Go(func() error {
		log.Info().Str("addr", fmt.Sprintf("http://localhost:%d", s.cfg.Port)).Msg("guidebook server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		log.Debug().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
