package eventlog

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// Service handles event audit logging business logic
type Service interface {
	// Subscribe registers the audit logger against every bus event type
	Subscribe(bus event.Bus) error

	// EventsForUser returns the most recent audit rows for one user
	EventsForUser(ctx context.Context, userID string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event audit service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all bus event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range domain.AllEventTypes {
		bus.Subscribe(event.Type(eventType), s.handleEvent)
	}

	return nil
}

// handleEvent persists a bus event as an audit row
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	userID := domain.PayloadUserID(evt.Payload)

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, evt.Version, evt.Payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, userID)
	return nil
}

// EventsForUser returns recent audit rows for a user, newest first.
// A non-positive or oversized limit is clamped to the defaults.
func (s *service) EventsForUser(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return s.repo.GetEventsByUser(ctx, userID, limit)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
