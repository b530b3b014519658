package config

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/askygg/internal/foundation/normalization"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "ASKYGG_LOG_LEVEL"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
})

func ParseLogLevel(raw string) (LogLevel, error) {
	return logLevelNormalizer.Parse(raw)
}

// Slog maps the level onto slog.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
})

func ParseLogFormat(raw string) (LogFormat, error) {
	return logFormatNormalizer.Parse(raw)
}

// EffectiveLevel resolves the level: -v wins, then ASKYGG_LOG_LEVEL, then config.
func (c LoggingConfig) EffectiveLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if raw := os.Getenv(LogLevelEnv); raw != "" {
		if level, err := ParseLogLevel(raw); err == nil {
			return level.Slog()
		}
	}
	return c.Level.Slog()
}

// NewLogger builds the slog logger described by c, writing to w.
func (c LoggingConfig) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.EffectiveLevel(verbose)}
	if c.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
