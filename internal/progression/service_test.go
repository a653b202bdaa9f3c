package progression

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
)

const testUserID = "user-1"

func newTestService(t *testing.T) (Service, *repository.FakeStatsRepository, *repository.FakeAchievementRepository, *repository.FakeShopRepository, *event.MemoryBus) {
	t.Helper()
	statsRepo := repository.NewFakeStatsRepository()
	achRepo := repository.NewFakeAchievementRepository()
	achRepo.Stats = statsRepo
	shopRepo := repository.NewFakeShopRepository()
	shopRepo.Stats = statsRepo
	bus := event.NewMemoryBus()
	svc := NewService(statsRepo, achRepo, shopRepo, bus, time.UTC)
	return svc, statsRepo, achRepo, shopRepo, bus
}

func TestEnsureStats_CreatesOnFirstSight(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	stats, err := svc.EnsureStats(context.Background(), testUserID, "u@example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, domain.InitialXPToNextLevel, stats.XPToNextLevel)
	assert.Equal(t, domain.RankE, stats.Rank)
	assert.Equal(t, 1, stats.Attributes.Strength)
	assert.Equal(t, 0, stats.Coins)
}

func TestEnsureStats_IdempotentForExistingUser(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	seeded := domain.NewUserStats(testUserID, "u@example.com")
	seeded.Level = 7
	seeded.Coins = 42
	repo.Seed(seeded)

	stats, err := svc.EnsureStats(context.Background(), testUserID, "u@example.com")
	require.NoError(t, err)

	assert.Equal(t, 7, stats.Level)
	assert.Equal(t, 42, stats.Coins)
}

func TestGrantRewards_XPAndCoins(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	result, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: 30, Coins: 5})
	require.NoError(t, err)

	assert.Equal(t, 30, result.XPGranted)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 5, result.NewCoins)

	stats, err := repo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.CurrentXP)
	assert.Equal(t, 5, stats.Coins)
	assert.Equal(t, 5, stats.ProgressValue(domain.StatTotalCoinsEarned))
}

func TestGrantRewards_LevelUpPublishesEvent(t *testing.T) {
	svc, repo, _, _, bus := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	var gotLevelUp *domain.LevelUpPayload
	bus.Subscribe(event.Type(domain.EventTypeLevelUp), func(ctx context.Context, e event.Event) error {
		p := e.Payload.(domain.LevelUpPayload)
		gotLevelUp = &p
		return nil
	})

	result, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: 120})
	require.NoError(t, err)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	require.NotNil(t, gotLevelUp)
	assert.Equal(t, 1, gotLevelUp.OldLevel)
	assert.Equal(t, 2, gotLevelUp.NewLevel)
}

func TestGrantRewards_MultiLevelGrant(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	result, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: 260})
	require.NoError(t, err)

	assert.Equal(t, 3, result.NewLevel)

	stats, err := repo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.CurrentXP)
	assert.Equal(t, 225, stats.XPToNextLevel)
	assert.Equal(t, 2, stats.AttributePoints)
}

func TestGrantRewards_TouchStreakCreditsOncePerDay(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	seeded := domain.NewUserStats(testUserID, "")
	seeded.CurrentStreak = 3
	seeded.LastCompletedDate = streak.DateString(time.Now().UTC().AddDate(0, 0, -1))
	repo.Seed(seeded)

	first, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: 10, TouchStreak: true})
	require.NoError(t, err)
	assert.True(t, first.StreakAdvanced)
	assert.Equal(t, 4, first.CurrentStreak)

	second, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: 10, TouchStreak: true})
	require.NoError(t, err)
	assert.False(t, second.StreakAdvanced)
	assert.Equal(t, 4, second.CurrentStreak)
}

func TestGrantRewards_ProgressCounters(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	_, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{
		XP:       10,
		Progress: map[string]int{domain.StatTasksCompleted: 1},
	})
	require.NoError(t, err)
	_, err = svc.GrantRewards(context.Background(), testUserID, GrantRequest{
		XP:       10,
		Progress: map[string]int{domain.StatTasksCompleted: 1},
	})
	require.NoError(t, err)

	stats, err := repo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ProgressValue(domain.StatTasksCompleted))
}

func TestGrantRewards_RejectsNegativeAmounts(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	_, err := svc.GrantRewards(context.Background(), testUserID, GrantRequest{XP: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrantRewards_UnknownUser(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.GrantRewards(context.Background(), "nobody", GrantRequest{XP: 10})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSpendAttributePoint(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	seeded := domain.NewUserStats(testUserID, "")
	seeded.AttributePoints = 2
	repo.Seed(seeded)

	stats, err := svc.SpendAttributePoint(context.Background(), testUserID, domain.AttributeStrength)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.AttributePoints)
	assert.Equal(t, 2, stats.Attributes.Strength)
	assert.Equal(t, 1, stats.Attributes.Intellect)
}

func TestSpendAttributePoint_NoPoints(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	_, err := svc.SpendAttributePoint(context.Background(), testUserID, domain.AttributeStamina)
	assert.ErrorIs(t, err, domain.ErrNoAttributePoints)
}

func TestSpendAttributePoint_UnknownAttribute(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	_, err := svc.SpendAttributePoint(context.Background(), testUserID, domain.Attribute("luck"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSelectTitle_RequiresUnlock(t *testing.T) {
	svc, repo, achRepo, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	err := svc.SelectTitle(context.Background(), testUserID, "Taskmaster")
	assert.ErrorIs(t, err, domain.ErrTitleNotUnlocked)

	_, _, err = achRepo.UnlockAchievement(context.Background(), testUserID, domain.Achievement{
		ID:            "ach-1",
		Title:         "First Steps",
		UnlockedTitle: "Taskmaster",
	})
	require.NoError(t, err)

	err = svc.SelectTitle(context.Background(), testUserID, "Taskmaster")
	require.NoError(t, err)

	stats, err := repo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Taskmaster", stats.SelectedTitle)
}

func TestSelectTitle_EmptyClearsTitle(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	seeded := domain.NewUserStats(testUserID, "")
	seeded.SelectedTitle = "Taskmaster"
	repo.Seed(seeded)

	err := svc.SelectTitle(context.Background(), testUserID, "")
	require.NoError(t, err)

	stats, err := repo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "", stats.SelectedTitle)
}

func TestSelectTheme_DefaultAlwaysAllowed(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.Seed(domain.NewUserStats(testUserID, ""))

	err := svc.SelectTheme(context.Background(), testUserID, domain.DefaultTheme)
	require.NoError(t, err)
}

func TestSelectTheme_RequiresOwnership(t *testing.T) {
	svc, repo, _, shopRepo, _ := newTestService(t)
	seeded := domain.NewUserStats(testUserID, "")
	seeded.Coins = 100
	repo.Seed(seeded)
	shopRepo.SeedItems(domain.ShopItem{ID: "theme-dark", Name: "Dark", Type: domain.ShopItemTypeTheme, Cost: 50})

	err := svc.SelectTheme(context.Background(), testUserID, "theme-dark")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = shopRepo.PurchaseItem(context.Background(), testUserID, domain.ShopItem{ID: "theme-dark", Name: "Dark", Type: domain.ShopItemTypeTheme, Cost: 50})
	require.NoError(t, err)

	err = svc.SelectTheme(context.Background(), testUserID, "theme-dark")
	require.NoError(t, err)
}
