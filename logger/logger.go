package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]any)
	Debug(action, message, requestID string, details map[string]any)
	Error(action, message, requestID string, details map[string]any, err error)
}

type jsonLogger struct {
	log *slog.Logger
}

// New returns a JSON logger stamped with the service and host name.
func New(service string, w io.Writer, level slog.Level) Logger {
	hostname, _ := os.Hostname()
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &jsonLogger{
		log: slog.New(h).With("service", service, "hostname", hostname),
	}
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]any) {
	l.emit(slog.LevelInfo, action, message, requestID, details, nil)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]any) {
	l.emit(slog.LevelDebug, action, message, requestID, details, nil)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]any, err error) {
	l.emit(slog.LevelError, action, message, requestID, details, err)
}

func (l *jsonLogger) emit(level slog.Level, action, message, requestID string, details map[string]any, err error) {
	attrs := []any{"action", action, "request_id", requestID}
	if len(details) > 0 {
		attrs = append(attrs, "details", details)
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	l.log.Log(context.Background(), level, message, attrs...)
}

var (
	mu  sync.RWMutex
	std = New("restaurant-api", os.Stdout, slog.LevelInfo)
)

// L returns the process-wide logger.
func L() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func SetDefault(l Logger) {
	mu.Lock()
	std = l
	mu.Unlock()
}
