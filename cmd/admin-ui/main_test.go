package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUI(t *testing.T) (http.Handler, *[]string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>dashboard</html>"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app-1a2b.js"), []byte("console.log(1)"), 0600))

	var proxied []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = append(proxied, r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(api.Close)

	target, err := url.Parse(api.URL)
	require.NoError(t, err)
	return newRouter(target, "/api/v1", dir), &proxied
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_ProxiesAPI(t *testing.T) {
	h, proxied := setupUI(t)

	for _, p := range []string{"/api/v1/products", "/auth/login", "/uploads/ages/a.png"} {
		rec := get(t, h, p)
		assert.Equal(t, http.StatusOK, rec.Code, p)
	}
	assert.Equal(t, []string{"/api/v1/products", "/auth/login", "/uploads/ages/a.png"}, *proxied)
}

func TestRouter_SPAFallback(t *testing.T) {
	h, proxied := setupUI(t)

	rec := get(t, h, "/orders/123")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "dashboard")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Empty(t, *proxied)
}

func TestRouter_AssetsCached(t *testing.T) {
	h, _ := setupUI(t)

	rec := get(t, h, "/assets/app-1a2b.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestRouter_Config(t *testing.T) {
	h, _ := setupUI(t)

	rec := get(t, h, "/config.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"base_url":"","base_path":"/api/v1"}`, rec.Body.String())
}

func TestRouter_TraversalStaysInStaticDir(t *testing.T) {
	h, _ := setupUI(t)

	rec := get(t, h, "/../../etc/passwd")
	assert.NotContains(t, rec.Body.String(), "root:")
}
