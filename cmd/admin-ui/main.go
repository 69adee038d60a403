package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/logging"
)

// admin-ui serves the browser dashboard bundle and proxies API calls to
// admin-api, so the bundle can use same-origin requests.
func main() {
	listenAddr := envOr("LISTEN_ADDR", ":3001")
	apiURL := envOr("ADMIN_API_URL", "http://localhost:8080")
	basePath := envOr("API_BASE_PATH", "/api/v1")
	staticDir := envOr("STATIC_DIR", "./dist")

	logger := logging.New(os.Stdout, "admin-ui", envOr("LOG_LEVEL", "info"), envOr("LOG_FORMAT", logging.FormatJSON))

	target, err := url.Parse(apiURL)
	if err != nil {
		logger.Fatal().Err(err).Str("url", apiURL).Msg("invalid ADMIN_API_URL")
	}

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           newRouter(target, basePath, staticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", listenAddr).Str("api", apiURL).Str("static", staticDir).Msg("admin UI listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func newRouter(target *url.URL, basePath, staticDir string) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// The bundle reads its API location at startup instead of baking it in
	// at build time.
	r.Get("/config.json", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"base_url": "", "base_path": basePath})
	})

	for _, prefix := range []string{strings.TrimRight(basePath, "/"), "/auth", "/uploads"} {
		r.Handle(prefix+"/*", proxy)
	}

	r.Handle("/*", spaHandler{staticDir: staticDir})
	return r
}

// spaHandler serves files from staticDir and falls back to index.html so
// client-side routes survive a reload.
type spaHandler struct {
	staticDir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := filepath.Join(h.staticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
		return
	}

	// Hashed asset names never change content.
	if strings.HasPrefix(r.URL.Path, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	http.ServeFile(w, r, p)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
