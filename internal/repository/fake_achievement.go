package repository

import (
	"context"
	"sync"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeAchievementRepository is a stateful in-memory AchievementRepository
// for tests. When Stats is set, UnlockAchievement applies the title grant
// to the same user's stats document, as the real transaction does.
type FakeAchievementRepository struct {
	mu       sync.Mutex
	catalog  []domain.Achievement
	unlocked map[string]map[string]domain.UnlockedAchievement

	Stats *FakeStatsRepository
}

// NewFakeAchievementRepository creates an empty fake
func NewFakeAchievementRepository() *FakeAchievementRepository {
	return &FakeAchievementRepository{
		unlocked: make(map[string]map[string]domain.UnlockedAchievement),
	}
}

// SeedCatalog replaces the achievement catalog.
func (f *FakeAchievementRepository) SeedCatalog(achievements ...domain.Achievement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog = append([]domain.Achievement{}, achievements...)
}

func (f *FakeAchievementRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Achievement{}, f.catalog...), nil
}

func (f *FakeAchievementRepository) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.UnlockedAchievement
	for _, u := range f.unlocked[userID] {
		out = append(out, u)
	}
	return out, nil
}

func (f *FakeAchievementRepository) UnlockAchievement(ctx context.Context, userID string, achievement domain.Achievement) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.unlocked[userID][achievement.ID]; ok {
		return false, false, nil
	}
	if f.unlocked[userID] == nil {
		f.unlocked[userID] = make(map[string]domain.UnlockedAchievement)
	}
	f.unlocked[userID][achievement.ID] = domain.UnlockedAchievement{
		AchievementID: achievement.ID,
		UserID:        userID,
		Title:         achievement.Title,
		UnlockedTitle: achievement.UnlockedTitle,
		UnlockedAt:    time.Now(),
	}

	titleGranted := false
	if achievement.UnlockedTitle != "" && f.Stats != nil {
		f.Stats.mu.Lock()
		if s, ok := f.Stats.stats[userID]; ok && s.SelectedTitle == "" {
			s.SelectedTitle = achievement.UnlockedTitle
			titleGranted = true
		}
		f.Stats.mu.Unlock()
	}

	return true, titleGranted, nil
}
