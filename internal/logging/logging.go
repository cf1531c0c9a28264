// Package logging builds the slog logger shared by every lockward component.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// Config selects level, format and destination.
type Config struct {
	Level  string
	Format Format
	// File is the log file. Empty logs to stderr.
	File string
}

// Logger is a slog.Logger that may own a log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// DefaultPath returns the per-user log file location.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lockward", "lockward.log")
}

// ParseLevel accepts debug, info, warn(ing) and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("unknown log level %q", s)
}

// New opens the configured destination and builds the logger.
func New(cfg Config) (*Logger, error) {
	l := &Logger{}

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log file")
		}
		l.file = f
		w = f
	}

	level := slog.LevelInfo
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			l.Close()
			return nil, err
		}
		level = parsed
	}

	l.Logger = slog.New(NewHandler(w, cfg.Format, level))
	return l, nil
}

// NewHandler returns a redacting text or JSON handler writing to w.
func NewHandler(w io.Writer, format Format, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact,
	}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindGroup && sensitive(a.Key) {
		a.Value = slog.StringValue(Redacted)
	}
	return a
}

func sensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range []string{"password", "secret", "hash"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
