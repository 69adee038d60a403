package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/config"
)

// Output formats accepted in LOG_FORMAT.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger tagged with the service name. The console format is
// meant for local runs; anything else writes one JSON object per line.
// Unknown or empty levels fall back to info.
func New(w io.Writer, service, level, format string) zerolog.Logger {
	if strings.EqualFold(format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return ctx.Logger().Level(lvl)
}

// NewLogger creates the admin-api logger on stdout.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return New(os.Stdout, cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
}
