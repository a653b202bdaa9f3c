package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// Service performs the passive streak check. Reading a profile never
// credits a streak; it only detects staleness and zeroes the counter.
type Service interface {
	// CheckStreak resets a stale streak to zero. It returns the streak value
	// after the check and whether this call broke it.
	CheckStreak(ctx context.Context, userID string) (int, bool, error)
}

type service struct {
	repo repository.StatsRepository
	bus  event.Bus
	loc  *time.Location
}

// NewService creates a new streak service
func NewService(repo repository.StatsRepository, bus event.Bus, loc *time.Location) Service {
	return &service{repo: repo, bus: bus, loc: loc}
}

func (s *service) CheckStreak(ctx context.Context, userID string) (int, bool, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("begin streak check: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	stats, err := tx.GetStatsForUpdate(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	today := Today(s.loc)
	if stats.CurrentStreak == 0 || !ShouldBreak(stats.LastCompletedDate, today) {
		return stats.CurrentStreak, false, nil
	}

	stats.CurrentStreak = 0
	stats.UpdatedAt = time.Now()
	if err := tx.UpdateStats(ctx, stats); err != nil {
		return 0, false, fmt.Errorf("reset streak: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("commit streak reset: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewStreakEvent(domain.EventTypeStreakBroken, userID, 0)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish streak broken event", "user_id", userID, "error", err)
	}

	return 0, true, nil
}
