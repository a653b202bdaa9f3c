package event

import (
	"context"
	"errors"
	"testing"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(Type(domain.EventTypeLevelUp), func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewLevelUpEvent("user-1", 9, 10, domain.RankD)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(domain.LevelUpPayload)
	require.True(t, ok)
	assert.Equal(t, 10, payload.NewLevel)
	assert.Equal(t, domain.RankD, payload.NewRank)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewStreakEvent(domain.EventTypeStreakAdvanced, "user-1", 3))
	assert.NoError(t, err)
}

func TestMemoryBusAggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(Type(domain.EventTypeBossDefeated), func(_ context.Context, _ Event) error {
		return errors.New("handler failed")
	})
	bus.Subscribe(Type(domain.EventTypeBossDefeated), func(_ context.Context, _ Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), NewBossDefeatedEvent("user-1", "boss-1", "Laundry Mountain"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler failed")
}

func TestBossDefeatedEventCarriesFixedBonus(t *testing.T) {
	evt := NewBossDefeatedEvent("user-1", "boss-1", "Laundry Mountain")
	payload, ok := evt.Payload.(domain.BossDefeatedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.BossDefeatBonusXP, payload.BonusXP)
	assert.Equal(t, domain.BossDefeatBonusCoins, payload.BonusCoins)
}
