// Package console forwards log output to the browser console.
//
// Log/Warn/Error/Debug call the matching console methods in WASM builds and
// write to Output elsewhere. Handler adapts the same sink to log/slog so the
// rest of the module can log with structured records.
package console

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a slog.Handler that formats records as text (without the time,
// the browser console stamps it) and routes them to Debug/Log/Warn/Error by
// level.
type Handler struct {
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

// Compile-time assertion.
var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a console handler. opts may be nil.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	var o slog.HandlerOptions
	if opts != nil {
		o = *opts
	}
	replace := o.ReplaceAttr
	o.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		if replace != nil {
			return replace(groups, a)
		}
		return a
	}

	buf := new(bytes.Buffer)
	return &Handler{
		mu:    new(sync.Mutex),
		buf:   buf,
		inner: slog.NewTextHandler(buf, &o),
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	h.buf.Reset()
	err := h.inner.Handle(ctx, r)
	line := strings.TrimSuffix(h.buf.String(), "\n")
	h.mu.Unlock()
	if err != nil {
		return err
	}

	switch {
	case r.Level >= slog.LevelError:
		Error(line)
	case r.Level >= slog.LevelWarn:
		Warn(line)
	case r.Level >= slog.LevelInfo:
		Log(line)
	default:
		Debug(line)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{mu: h.mu, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{mu: h.mu, buf: h.buf, inner: h.inner.WithGroup(name)}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a logger writing to the console at the given level.
func NewLogger(level string) *slog.Logger {
	return slog.New(NewHandler(&slog.HandlerOptions{Level: ParseLevel(level)}))
}
