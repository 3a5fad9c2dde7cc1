package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
)

// Store is the log persistence contract.
type Store interface {
	AppendLog(ctx context.Context, entry *models.LogEntry) error
	ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
	ClearLogs(ctx context.Context) error
}

// Service wraps the log store. Appends are best-effort: a dropped log entry
// is accepted as non-critical, so write failures go to the developer console
// and are never retried or queued.
type Service struct {
	store        Store
	defaultLimit int
	maxLimit     int
}

func NewService(store Store, defaultLimit, maxLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	if maxLimit <= 0 {
		maxLimit = 500
	}
	return &Service{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Record writes one entry, swallowing failures.
func (s *Service) Record(ctx context.Context, level models.LogLevel, tag, message string, fields map[string]any) {
	entry := &models.LogEntry{
		Level:     level,
		Tag:       tag,
		Message:   message,
		CreatedBy: "system",
	}
	if len(fields) > 0 {
		if data, err := json.Marshal(fields); err == nil {
			entry.Context = data
		}
	}
	s.Append(ctx, entry)
}

// Append writes one prepared entry, swallowing failures.
func (s *Service) Append(ctx context.Context, entry *models.LogEntry) {
	if err := s.store.AppendLog(ctx, entry); err != nil {
		observability.LogWrites.WithLabelValues("dropped").Inc()
		slog.Error("append log entry", "tag", entry.Tag, "error", err)
		return
	}
	observability.LogWrites.WithLabelValues("ok").Inc()
}

// List returns the most recent entries, newest first. A non-positive limit
// uses the default; anything above the maximum is clamped.
func (s *Service) List(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.store.ListLogs(ctx, limit)
}

// ClearAll deletes every entry. Not reversible.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.ClearLogs(ctx)
}
