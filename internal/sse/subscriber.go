package sse

import (
	"context"
	"log/slog"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers handlers for every bus event type so the hub
// mirrors the full event stream.
func (s *Subscriber) Subscribe() {
	for _, t := range domain.AllEventTypes {
		s.bus.Subscribe(event.Type(t), s.handleEvent)
	}

	slog.Info("SSE subscriber registered for event types", "types", domain.AllEventTypes)
}

// handleEvent forwards a bus event to the hub, scoped to the user it
// concerns so one user's rewards never reach another user's stream.
func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	userID := domain.PayloadUserID(evt.Payload)
	s.hub.Broadcast(string(evt.Type), userID, evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", userID)
	return nil
}
