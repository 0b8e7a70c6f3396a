// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// request middleware stored in the context, already tagged with request_id,
// so every log line from a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=1f0c... order_id=12
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shashiranjanraj/storefront/config"
)

// L is the process-wide base logger. Setup replaces it; until then it writes
// human-readable debug output to stdout.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Setup builds the logger described by cfg, installs it as L and as the slog
// default, and returns a close function that flushes the MongoDB sink (if
// any). The close function is never nil.
func Setup(cfg config.Log, app config.App) (func(), error) {
	log, closeFn, err := New(cfg, app, os.Stdout)
	if err != nil {
		return func() {}, err
	}
	L = log
	slog.SetDefault(log)
	return closeFn, nil
}

// New builds a logger without touching the package globals.
func New(cfg config.Log, app config.App, w io.Writer) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level, app)}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
		if app.IsProduction() {
			format = "json" // structured JSON for log aggregators
		}
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	closeFn := func() {}
	if cfg.MongoURI != "" {
		mh, err := NewMongoHandler(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, opts.Level)
		if err != nil {
			return nil, closeFn, fmt.Errorf("logger: %w", err)
		}
		handler = NewMultiHandler(handler, mh)
		closeFn = mh.Close
	}

	return slog.New(handler).With("app", app.Name), closeFn, nil
}

func parseLevel(s string, app config.App) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		if app.IsProduction() {
			return slog.LevelInfo
		}
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the per-request logger stored by InjectLogger, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware and by
// queue workers so jobs log with the same fields as the request that
// dispatched them.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
