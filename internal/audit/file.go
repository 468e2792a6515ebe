package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// DefaultFilePath is where the file sink writes when no path is configured.
const DefaultFilePath = "logs/ethics_audit.log"

// FileSink writes one JSON object per line through a slog JSON handler.
type FileSink struct {
	handler slog.Handler
	closer  io.Closer
}

// NewFileSink opens path for appending, creating parent directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		path = DefaultFilePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	s := NewWriterSink(f)
	s.closer = f
	return s, nil
}

// NewWriterSink writes JSON lines to w.
func NewWriterSink(w io.Writer) *FileSink {
	return &FileSink{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}
}

func (s *FileSink) Write(ctx context.Context, event domain.AuditEvent) error {
	r := slog.NewRecord(time.Now(), levelFor(event.Kind), event.Kind.String(), 0)
	r.AddAttrs(
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", event.UserID),
		slog.String("timestamp", event.Timestamp.Format(time.RFC3339Nano)),
	)
	for k, v := range event.Fields {
		r.AddAttrs(slog.String(k, v))
	}
	if err := s.handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("write audit event %s: %w", event.ID, err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (s *FileSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func levelFor(kind domain.AuditKind) slog.Level {
	if kind == domain.AuditEthicalViolation {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
