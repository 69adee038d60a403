package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edvin/shopadmin/internal/api"
	"github.com/edvin/shopadmin/internal/cache"
	"github.com/edvin/shopadmin/internal/config"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/db"
	"github.com/edvin/shopadmin/internal/events"
	"github.com/edvin/shopadmin/internal/logging"
	"github.com/edvin/shopadmin/internal/metrics"
	"github.com/edvin/shopadmin/internal/moderation"
	"github.com/edvin/shopadmin/internal/storage"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "create-admin" {
		createAdmin(os.Args[2:])
		return
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("admin-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	metrics.RegisterPgxPoolMetrics(prometheus.DefaultRegisterer, pool)

	var statsCache core.StatsCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		statsCache = cache.NewRedisCache(rdb)
		logger.Info().Dur("ttl", cfg.StatsCacheTTL).Msg("dashboard stats cache enabled")
	}

	store, err := storage.New(cfg.StorageOptions())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}
	logger.Info().Stringer("storage", store).Msg("media storage ready")

	flagger, err := moderation.Load(cfg.ModerationKeywordsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load moderation keywords")
	}

	hub := events.NewHub(logger, events.DefaultBuffer)
	metrics.RegisterOrderFeedMetrics(prometheus.DefaultRegisterer, hub)

	services := core.NewServices(pool, core.Deps{
		Storage:           store,
		Flagger:           flagger,
		Events:            hub,
		StatsCache:        statsCache,
		StatsCacheTTL:     cfg.StatsCacheTTL,
		LowStockThreshold: cfg.LowStockThreshold,
		JWTSecret:         cfg.JWTSecret,
		JWTIssuer:         cfg.JWTIssuer,
		TokenTTL:          cfg.JWTTTL,
	})

	opts := api.Options{CORSOrigins: cfg.CORSOrigins}
	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		opts.UploadDir = cfg.LocalUploadDir
	}
	srv := api.NewServer(logger, pool, services, hub, opts)
	defer srv.Close()

	// No WriteTimeout: the order stream keeps connections open and bounds
	// each write itself.
	httpServer := &http.Server{
		Addr:              cfg.HTTPListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting admin API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	var metricsServer *http.Server
	if cfg.MetricsListenAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsListenAddr, pool.Ping)
		go func() {
			logger.Info().Str("addr", cfg.MetricsListenAddr).Msg("starting metrics server")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	hub.Close()
	httpServer.Shutdown(shutdownCtx)
	if metricsServer != nil {
		metricsServer.Shutdown(shutdownCtx)
	}
}

func createAdmin(args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "Admin email address (required)")
	password := fs.String("password", "", "Admin password, at least 8 characters (required)")
	name := fs.String("name", "", "Display name")
	role := fs.String("role", "admin", "Role")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "error: --email and --password are required")
		fmt.Fprintln(os.Stderr, "usage: admin-api create-admin --email <email> --password <password> [--name <name>]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate("create-admin"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := core.NewAuthService(pool, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	admin, err := svc.CreateAdmin(ctx, *email, *password, *name, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully.\n\n")
	fmt.Printf("  Email:  %s\n", admin.Email)
	fmt.Printf("  ID:     %s\n", admin.ID)
	fmt.Printf("  Role:   %s\n", admin.Role)
}
