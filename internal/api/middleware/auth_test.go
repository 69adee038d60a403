package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
)

func newTestAuth(t *testing.T) (*core.AuthService, string) {
	t.Helper()
	svc := core.NewAuthService(nil, "test-secret", "shopadmin", time.Hour)
	token, err := svc.IssueToken(&model.AdminUser{ID: "admin-1", Email: "ops@example.com", Role: "admin"})
	require.NoError(t, err)
	return svc, token
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte(claims.Subject))
	})
}

func TestAuth_MissingToken(t *testing.T) {
	svc, _ := newTestAuth(t)
	handler := Auth(svc)(claimsEcho())

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "missing bearer token", body["error"])
}

func TestAuth_ValidToken(t *testing.T) {
	svc, token := newTestAuth(t)
	handler := Auth(svc)(claimsEcho())

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", rec.Body.String())
}

func TestAuth_InvalidToken(t *testing.T) {
	svc, _ := newTestAuth(t)
	handler := Auth(svc)(claimsEcho())

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized: invalid token", body["error"])
}

func TestAuth_QueryTokenOnlyForWebsocket(t *testing.T) {
	svc, token := newTestAuth(t)
	handler := Auth(svc)(claimsEcho())

	req := httptest.NewRequest("GET", "/api/v1/orders/stream?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/api/v1/orders/stream?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"empty", "", ""},
		{"no prefix", "abc.def.ghi", ""},
		{"basic auth ignored", "Basic dXNlcjpwYXNz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}
