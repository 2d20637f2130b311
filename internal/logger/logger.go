package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type Logger struct {
	*slog.Logger
}

func New() *Logger {
	return NewWithWriter(os.Stdout, slog.LevelInfo)
}

func NewWithWriter(w io.Writer, level slog.Level) *Logger {
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	return &Logger{Logger: log}
}

// Discard drops everything; the terminal game uses it when no log file is set.
func Discard() *Logger {
	return NewWithWriter(io.Discard, slog.LevelError)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// NewMiddleware puts a request scoped logger into the request context and
// logs every request once it is served.
func NewMiddleware(base *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := base.With("method", r.Method, "path", r.URL.Path)
			if id := middleware.GetReqID(r.Context()); id != "" {
				log = log.With("request_id", id)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t := time.Now()
			next.ServeHTTP(ww, r.WithContext(NewContext(r.Context(), log)))

			log.Info("request served", "status", ww.Status(), "duration", time.Since(t))
		})
	}
}

type loggerContextKey string

const contextKeyValue loggerContextKey = "context-logger"

func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKeyValue, l)
}

func FromContext(ctx context.Context) *Logger {
	if l := ctx.Value(contextKeyValue); l != nil {
		return l.(*Logger)
	}

	return New()
}
