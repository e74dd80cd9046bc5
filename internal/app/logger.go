package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/andyballingall/json-schema-validator/internal/fs"
)

const (
	LogFile   = ".jsv.log"
	LogEnvVar = "JSV_LOG_FILE"
)

// setupLogger returns a logger which writes JSON records at debug level to the
// log file and plain messages at the level held by logLevel to stderr. The log
// file is JSV_LOG_FILE if set, else .jsv.log in dir. If the file cannot be
// opened the logger still writes to stderr and the error is returned.
func setupLogger(stderr io.Writer, logLevel *slog.LevelVar, env fs.EnvProvider, dir string) (*slog.Logger, io.Closer, error) {
	logPath := env.Get(LogEnvVar)
	if logPath == "" {
		logPath = filepath.Join(dir, LogFile)
	}

	handlers := make([]slog.Handler, 0, 2)
	var closer io.Closer = nopCloser{}

	//nolint:gosec // Log path is chosen by the user
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err == nil {
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	handlers = append(handlers, &consoleHandler{w: stderr, level: logLevel})

	return slog.New(&multiHandler{handlers: handlers}), closer, err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler fans records out to every handler enabled for their level.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *multiHandler) each(f func(slog.Handler) slog.Handler) *multiHandler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = f(h)
	}
	return &multiHandler{handlers: hs}
}

// consoleHandler prints the bare message, prefixed for warnings and errors.
// Attributes are shown only at debug level, except errors which are always shown.
type consoleHandler struct {
	w      io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	prefix string
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	switch {
	case record.Level >= slog.LevelError:
		fmt.Fprintf(c.w, "Error: %s", record.Message)
	case record.Level >= slog.LevelWarn:
		fmt.Fprintf(c.w, "Warning: %s", record.Message)
	default:
		fmt.Fprint(c.w, record.Message)
	}

	for _, a := range c.attrs {
		c.formatAttr(a, "")
	}
	record.Attrs(func(a slog.Attr) bool {
		c.formatAttr(a, c.prefix)
		return true
	})

	fmt.Fprintln(c.w)
	return nil
}

func (c *consoleHandler) formatAttr(a slog.Attr, prefix string) {
	switch {
	case a.Key == "error" || a.Key == "err":
		fmt.Fprintf(c.w, ": %v", a.Value)
	case c.level.Level() <= slog.LevelDebug:
		fmt.Fprintf(c.w, " %s%s=%v", prefix, a.Key, a.Value)
	}
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		qualified[i] = slog.Attr{Key: c.prefix + a.Key, Value: a.Value}
	}
	return &consoleHandler{
		w:      c.w,
		level:  c.level,
		attrs:  append(append([]slog.Attr{}, c.attrs...), qualified...),
		prefix: c.prefix,
	}
}

func (c *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	return &consoleHandler{
		w:      c.w,
		level:  c.level,
		attrs:  c.attrs,
		prefix: c.prefix + name + ".",
	}
}
