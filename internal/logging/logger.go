// Package logging настраивает slog и переносит идентификатор прогона через context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

// RunIDContextKey ключ идентификатора прогона в context
const RunIDContextKey contextKey = "run_id"

// Параметры логгера
type Options struct {
	Level  string
	Format string
}

// New создаёт логгер: формат json или text, уровень debug|info|warn|error.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(&runHandler{Handler: handler})
}

// runHandler добавляет run_id из context к каждой записи.
type runHandler struct {
	slog.Handler
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RunID(ctx); id != "" {
		r.AddAttrs(slog.String(string(RunIDContextKey), id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel переводит строковый уровень в slog.Level, неизвестное значение даёт info
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

// WithRunID кладёт в context новый идентификатор прогона.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDContextKey, uuid.NewString())
}

// RunID достаёт идентификатор прогона из context.
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RunIDContextKey).(string)
	return id
}
