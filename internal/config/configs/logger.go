package configs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger configures the process-wide slog logger.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"` // text or json
	// AddSource annotates every record with the caller's file and line.
	AddSource bool `env:"ADD_SOURCE" envDefault:"false"`
}

var slogLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
	"err":     slog.LevelError,
}

// SlogLevel maps Level onto slog. Anything unrecognised is info.
func (c Logger) SlogLevel() slog.Level {
	if l, ok := slogLevels[strings.ToLower(strings.TrimSpace(c.Level))]; ok {
		return l
	}
	return slog.LevelInfo
}

// SlogFormat returns "json" or "text".
func (c Logger) SlogFormat() string {
	if strings.EqualFold(strings.TrimSpace(c.Format), "json") {
		return "json"
	}
	return "text"
}

// Build returns a logger writing to w that tags every record with the
// service name and deployment environment.
func (c Logger) Build(w io.Writer, service, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel(), AddSource: c.AddSource}
	var h slog.Handler
	if c.SlogFormat() == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", service), slog.String("env", env))
}
