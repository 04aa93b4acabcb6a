// Package observability provides structured logging helpers for the bot.
// Each incoming front-end event gets an EventContext carrying a generated
// request ID and the user identity, so all log lines of one conversation
// step can be correlated.
package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldUserID is the field name for user ID.
	LogFieldUserID = "user_id"
	// LogFieldEventType is the field name for the front-end event type.
	LogFieldEventType = "event_type"
	// LogFieldPhase is the field name for the conversation phase.
	LogFieldPhase = "phase"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
)

// EventContext represents the context for a single handled event with
// structured logging.
type EventContext struct {
	RequestID string
	UserID    int64
	EventType string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewEventContext creates a new event context with a generated request ID.
func NewEventContext(logger *slog.Logger, eventType string, userID int64) *EventContext {
	return &EventContext{
		RequestID: uuid.New().String(),
		UserID:    userID,
		EventType: eventType,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message.
func (e *EventContext) Info(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, e.baseAttrsAppended(attrs...)...)
}

// Debug logs a debug message.
func (e *EventContext) Debug(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, e.baseAttrsAppended(attrs...)...)
}

// Warn logs a warning message.
func (e *EventContext) Warn(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, e.baseAttrsAppended(attrs...)...)
}

// Error logs an error message with the error.
func (e *EventContext) Error(msg string, err error, attrs ...slog.Attr) {
	allAttrs := append(attrs, slog.String("error", err.Error()))
	e.Logger.LogAttrs(context.Background(), slog.LevelError, msg, e.baseAttrsAppended(allAttrs...)...)
}

// Duration returns the elapsed time since the event arrived.
func (e *EventContext) Duration() time.Duration {
	return time.Since(e.StartTime)
}

// DurationMs returns the elapsed time in milliseconds.
func (e *EventContext) DurationMs() int64 {
	return e.Duration().Milliseconds()
}

func (e *EventContext) baseAttrsAppended(attrs ...slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldRequestID, e.RequestID),
		slog.Int64(LogFieldUserID, e.UserID),
		slog.String(LogFieldEventType, e.EventType),
	}
	return append(base, attrs...)
}
