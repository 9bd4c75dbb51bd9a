package logging

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level from a LOG_LEVEL style string.
// Unknown values fall back to info.
func SetLevel(name string) {
	minLevel.Store(int32(ParseLevel(name)))
}

func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func enabled(l Level) bool {
	return int32(l) >= minLevel.Load()
}

// requestIDKey is the key used to store request ID in context
type requestIDKey struct{}

type sessionIDKey struct{}

// WithRequestID stores the request ID in a standard context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

func SessionID(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return sid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
	sessionID string
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, sessionID: SessionID(ctx)}
}

func (l *Logger) prefix(level, operation string) string {
	if l.sessionID != "" {
		return "[" + level + "] request_id=" + l.requestID + " session=" + l.sessionID + " operation=" + operation
	}
	return "[" + level + "] request_id=" + l.requestID + " operation=" + operation
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	if !enabled(LevelError) {
		return
	}
	log.Printf("%s error=%v", l.prefix("error", operation), err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	if !enabled(LevelError) {
		return
	}
	log.Printf("%s "+format, append([]interface{}{l.prefix("error", operation)}, args...)...)
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	if !enabled(LevelInfo) {
		return
	}
	log.Printf("%s message=%s", l.prefix("info", operation), message)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	log.Printf("%s "+format, append([]interface{}{l.prefix("info", operation)}, args...)...)
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string) {
	if !enabled(LevelWarn) {
		return
	}
	log.Printf("%s message=%s", l.prefix("warn", operation), message)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	if !enabled(LevelWarn) {
		return
	}
	log.Printf("%s "+format, append([]interface{}{l.prefix("warn", operation)}, args...)...)
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	if !enabled(LevelDebug) {
		return
	}
	log.Printf("%s "+format, append([]interface{}{l.prefix("debug", operation)}, args...)...)
}
