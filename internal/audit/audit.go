// Package audit records compliance events: crisis detections, ethical
// violations, data access and bias findings. Only out_of_scope_query
// violations carry the user's message, as their details.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// Sink persists audit events.
type Sink interface {
	Write(ctx context.Context, event domain.AuditEvent) error
}

// MultiSink fans an event out to every sink. All sinks are attempted and
// their errors joined.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, event domain.AuditEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logger builds audit events and hands them to a Sink. Sink failures are
// logged and never returned to the caller.
type Logger struct {
	sink Sink
	log  *slog.Logger
}

// NewLogger creates an audit Logger writing to sink.
func NewLogger(log *slog.Logger, sink Sink) *Logger {
	return &Logger{
		sink: sink,
		log:  log.With("component", "audit"),
	}
}

// LogCrisisDetection records a crisis_detected event. Only the length of the
// user's text is stored.
func (l *Logger) LogCrisisDetection(ctx context.Context, userID string, category domain.CrisisCategory, textLength int) {
	l.write(ctx, domain.NewAuditEvent(domain.AuditCrisisDetected, userID, map[string]string{
		"crisis_type":      category.String(),
		"user_text_length": strconv.Itoa(textLength),
	}))
}

// LogEthicalViolation records an ethical_violation_detected event.
func (l *Logger) LogEthicalViolation(ctx context.Context, userID string, violation domain.ViolationType, details string) {
	l.write(ctx, domain.NewAuditEvent(domain.AuditEthicalViolation, userID, map[string]string{
		"violation_type": violation.String(),
		"details":        details,
	}))
}

// LogDataAccess records a data_access event.
func (l *Logger) LogDataAccess(ctx context.Context, userID string, action domain.DataAction) {
	l.write(ctx, domain.NewAuditEvent(domain.AuditDataAccess, userID, map[string]string{
		"action": action.String(),
	}))
}

// LogBiasDetection records a bias_detected event.
func (l *Logger) LogBiasDetection(ctx context.Context, userID, biasType string, severity domain.Severity) {
	l.write(ctx, domain.NewAuditEvent(domain.AuditBiasDetected, userID, map[string]string{
		"bias_type": biasType,
		"severity":  severity.String(),
	}))
}

func (l *Logger) write(ctx context.Context, event domain.AuditEvent) {
	if err := l.sink.Write(ctx, event); err != nil {
		l.log.ErrorContext(ctx, "audit write failed",
			slog.String("kind", event.Kind.String()),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
