package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Type-safe event constructors

// NewTaskCompletedEvent creates a task-completed event
func NewTaskCompletedEvent(userID, taskID, title string, xp, coins int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTaskCompleted),
		Payload: domain.TaskCompletedPayload{
			UserID:       userID,
			TaskID:       taskID,
			Title:        title,
			XPGranted:    xp,
			CoinsGranted: coins,
		},
	}
}

// NewRewardGrantedEvent creates a reward-granted event
func NewRewardGrantedEvent(userID string, result domain.RewardResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeRewardGranted),
		Payload: domain.RewardGrantedPayload{
			UserID:       userID,
			XPGranted:    result.XPGranted,
			CoinsGranted: result.CoinsGranted,
			NewLevel:     result.NewLevel,
			NewCoins:     result.NewCoins,
		},
	}
}

// NewLevelUpEvent creates a level-up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, newRank domain.Rank) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: domain.LevelUpPayload{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			NewRank:  newRank,
		},
	}
}

// NewAchievementUnlockedEvent creates an achievement-unlocked event
func NewAchievementUnlockedEvent(userID string, ach domain.Achievement, titleGranted bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAchievementUnlocked),
		Payload: domain.AchievementUnlockedPayload{
			UserID:        userID,
			AchievementID: ach.ID,
			Title:         ach.Title,
			UnlockedTitle: ach.UnlockedTitle,
			TitleGranted:  titleGranted,
		},
	}
}

// NewBossDamagedEvent creates a boss-damaged event
func NewBossDamagedEvent(userID, bossID, attackID string, totalDamage, remainingHP int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeBossDamaged),
		Payload: domain.BossDamagedPayload{
			UserID:      userID,
			BossID:      bossID,
			AttackID:    attackID,
			TotalDamage: totalDamage,
			RemainingHP: remainingHP,
		},
	}
}

// NewBossDefeatedEvent creates a boss-defeated event
func NewBossDefeatedEvent(userID, bossID, bossName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeBossDefeated),
		Payload: domain.BossDefeatedPayload{
			UserID:     userID,
			BossID:     bossID,
			BossName:   bossName,
			BonusXP:    domain.BossDefeatBonusXP,
			BonusCoins: domain.BossDefeatBonusCoins,
		},
	}
}

// NewItemPurchasedEvent creates a purchase event
func NewItemPurchasedEvent(userID string, item domain.ShopItem, coinsRemaining int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeItemPurchased),
		Payload: domain.ItemPurchasedPayload{
			UserID:         userID,
			ItemID:         item.ID,
			ItemName:       item.Name,
			Cost:           item.Cost,
			CoinsRemaining: coinsRemaining,
		},
	}
}

// NewDailyResetEvent creates a daily-reset-complete event
func NewDailyResetEvent(userID string, result domain.DailyResetResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDailyReset),
		Payload: domain.DailyResetPayload{
			UserID:       userID,
			TasksReset:   result.TasksReset,
			QuestsRolled: result.QuestsRolled,
			ResetDate:    result.ResetDate,
		},
	}
}

// NewStreakEvent creates a streak-advanced or streak-broken event
func NewStreakEvent(eventType string, userID string, currentStreak int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: domain.StreakPayload{
			UserID:        userID,
			CurrentStreak: currentStreak,
		},
	}
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously so a committed write is observable by
	// every subscriber before the publishing operation returns.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
