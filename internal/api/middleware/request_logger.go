package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger stores a request-scoped logger in the context and writes one
// line per request when the handler returns. Auth adds the admin id to the
// same logger, so authenticated requests are logged with the acting admin.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			r = r.WithContext(reqLogger.WithContext(r.Context()))

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			l := zerolog.Ctx(r.Context())
			var ev *zerolog.Event
			switch {
			case ww.status >= http.StatusInternalServerError:
				ev = l.Error()
			case ww.status >= http.StatusBadRequest:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// tagAdmin adds the authenticated admin to the request logger, if any.
func tagAdmin(r *http.Request, adminID, email string) {
	zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("admin_id", adminID).Str("admin_email", email)
	})
}
