package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edvin/shopadmin/internal/storage"
)

type Config struct {
	ServiceName       string
	DatabaseURL       string
	HTTPListenAddr    string
	MetricsListenAddr string
	LogLevel          string
	LogFormat         string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// RedisURL enables the dashboard stats cache when set.
	RedisURL      string
	StatsCacheTTL time.Duration

	StorageDriver  string
	LocalUploadDir string
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string
	S3PublicURL    string

	ModerationKeywordsFile string
	CORSOrigins            []string
	LowStockThreshold      int
}

func Load() (*Config, error) {
	jwtTTL, err := getDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	statsTTL, err := getDuration("STATS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	lowStock, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	if err != nil {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: %w", err)
	}

	cfg := &Config{
		ServiceName:            getEnv("SERVICE_NAME", "admin-api"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		HTTPListenAddr:         getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsListenAddr:      getEnv("METRICS_LISTEN_ADDR", ""),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTIssuer:              getEnv("JWT_ISSUER", "shopadmin"),
		JWTTTL:                 jwtTTL,
		RedisURL:               getEnv("REDIS_URL", ""),
		StatsCacheTTL:          statsTTL,
		StorageDriver:          getEnv("STORAGE_DRIVER", "local"),
		LocalUploadDir:         getEnv("LOCAL_UPLOAD_DIR", "./uploads"),
		S3Endpoint:             getEnv("S3_ENDPOINT", ""),
		S3Region:               getEnv("S3_REGION", ""),
		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3AccessKey:            getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:            getEnv("S3_SECRET_KEY", ""),
		S3Prefix:               getEnv("S3_PREFIX", ""),
		S3PublicURL:            getEnv("S3_PUBLIC_BASE_URL", ""),
		ModerationKeywordsFile: getEnv("MODERATION_KEYWORDS_FILE", ""),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LowStockThreshold:      lowStock,
	}

	return cfg, nil
}

// Validate checks the settings the given component needs. The
// "create-admin" component only needs the database.
func (c *Config) Validate(component string) error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if component == "admin-api" {
		if c.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
		if c.StorageDriver == "s3" {
			if c.S3Bucket == "" {
				missing = append(missing, "S3_BUCKET")
			}
			if c.S3Region == "" {
				missing = append(missing, "S3_REGION")
			}
			if c.S3PublicURL == "" {
				missing = append(missing, "S3_PUBLIC_BASE_URL")
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config for %s: %s", component, strings.Join(missing, ", "))
	}
	if component == "admin-api" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative")
	}
	return nil
}

// StorageOptions returns the media storage settings.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:         c.StorageDriver,
		LocalDir:       c.LocalUploadDir,
		LocalURLPrefix: "/uploads",
		S3: storage.S3Config{
			Endpoint:      c.S3Endpoint,
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Prefix:        c.S3Prefix,
			PublicBaseURL: c.S3PublicURL,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
