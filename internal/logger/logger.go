package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger emits structured JSON log entries for a single service.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a fresh identifier for correlating log entries
// of one request.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, requestID, message string, fields map[string]any) {
	l.log(slog.LevelInfo, action, requestID, message, nil, fields)
}

func (l *Logger) Debug(action, requestID, message string, fields map[string]any) {
	l.log(slog.LevelDebug, action, requestID, message, nil, fields)
}

func (l *Logger) Error(action, requestID, message string, err error, fields map[string]any) {
	l.log(slog.LevelError, action, requestID, message, err, fields)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, err error, fields map[string]any) {
	attrs := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	l.handler.LogAttrs(context.Background(), level, message, attrs...)
}
