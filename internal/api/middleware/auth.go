package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenValidator verifies a bearer token. Implemented by core.AuthService.
type TokenValidator interface {
	ValidateToken(token string) (*core.Claims, error)
}

// Auth returns middleware that validates JWT Bearer tokens and injects the
// claims into the request context. Websocket upgrades may pass the token
// as a "token" query parameter instead, since browsers cannot set headers
// on them.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && isWebsocketUpgrade(r) {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			tagAdmin(r, claims.Subject, claims.Email)
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// GetClaims extracts JWT claims from the request context.
func GetClaims(ctx context.Context) *core.Claims {
	claims, _ := ctx.Value(claimsKey).(*core.Claims)
	return claims
}

// WithClaims returns a context carrying claims, as Auth would set them.
func WithClaims(ctx context.Context, claims *core.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
