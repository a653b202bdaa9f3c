package repository

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// AchievementRepository defines the interface for achievement data operations.
// UnlockAchievement runs its own transaction: it re-checks ownership under
// lock, inserts the unlock row, and grants the title when the user has none.
// It reports whether the unlock was new and whether the title was applied.
type AchievementRepository interface {
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)
	UnlockAchievement(ctx context.Context, userID string, achievement domain.Achievement) (unlocked, titleGranted bool, err error)
}
