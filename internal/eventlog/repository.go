package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Event is one persisted audit row. Payload keeps the original wire
// shape of the bus event so older rows survive payload schema changes.
type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	UserID    string          `json:"user_id"`
	Version   string          `json:"version"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	UserID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event audit storage
type Repository interface {
	// LogEvent stores an event. The payload is serialized as-is.
	LogEvent(ctx context.Context, eventType, userID, version string, payload interface{}) error

	// GetEvents retrieves events based on filter criteria, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// GetEventsByUser retrieves events for a specific user, newest first
	GetEventsByUser(ctx context.Context, userID string, limit int) ([]Event, error)

	// GetEventsByType retrieves events of a specific type, newest first
	GetEventsByType(ctx context.Context, eventType string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
