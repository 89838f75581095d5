package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ziadkadry99/guidebook/internal/logging"
)

const (
	sessionName  = "guidebook"
	sessionIDKey = "sid"
)

type sessionCtxKey struct{}

// SessionID returns the visitor session id stored on ctx, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionCtxKey{}).(string)
	return id
}

// sessionMiddleware assigns every visitor a stable session id cookie.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		sess, err := s.sessions.Get(r, sessionName)
		if err != nil {
			log.Debug().Err(err).Msg("discarding unreadable session cookie")
		}

		id, _ := sess.Values[sessionIDKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				log.Warn().Err(err).Msg("saving session")
			}
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, id)
		ctx = logging.WithContext(ctx, log.With().Str("session_id", id).Logger())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs each request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		log := logging.Component("http").With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Logger()
		r = r.WithContext(logging.WithContext(r.Context(), log))

		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
