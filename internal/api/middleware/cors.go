package middleware

import (
	"net/http"
	"strings"

	"github.com/edvin/shopadmin/internal/api/response"
)

// CORS lets the dashboard bundle call the API from its own origin. A single
// "*" allows any origin. Preflights from other origins are refused so a
// misconfigured CORS_ORIGINS shows up as a 403 rather than a silent browser
// failure.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	anyOrigin := allowed["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			ok := origin != "" && (anyOrigin || allowed[origin])
			if ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
				// Product exports are downloaded with their file name.
				h.Set("Access-Control-Expose-Headers", "Content-Disposition")
				h.Set("Access-Control-Max-Age", "86400")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if !ok {
					response.WriteError(w, http.StatusForbidden, "origin not allowed")
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
