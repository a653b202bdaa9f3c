package metrics

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range domain.AllEventTypes {
		bus.Subscribe(event.Type(eventType), e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.TaskCompletedPayload:
		TasksCompleted.Inc()

	case domain.LevelUpPayload:
		LevelUps.WithLabelValues(string(p.NewRank)).Inc()

	case domain.RewardGrantedPayload:
		XPGranted.Add(float64(p.XPGranted))
		CoinsEarned.Add(float64(p.CoinsGranted))

	case domain.AchievementUnlockedPayload:
		AchievementsUnlocked.Inc()

	case domain.StreakPayload:
		if evt.Type == event.Type(domain.EventTypeStreakBroken) {
			StreaksBroken.Inc()
		}

	case domain.BossDamagedPayload:
		BossDamageDealt.Add(float64(p.TotalDamage))

	case domain.BossDefeatedPayload:
		BossesDefeated.Inc()

	case domain.ItemPurchasedPayload:
		ItemsPurchased.WithLabelValues(p.ItemName).Inc()
		CoinsSpent.Add(float64(p.Cost))

	case domain.DailyResetPayload:
		DailyResets.Inc()
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
