package achievement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

const testUserID = "user-1"

var (
	achLevelFive = domain.Achievement{
		ID:              "ach-level-5",
		Title:           "Getting Started",
		UnlockedTitle:   "Novice",
		StatToTrack:     domain.StatLevel,
		UnlockThreshold: 5,
	}
	achTenTasks = domain.Achievement{
		ID:              "ach-tasks-10",
		Title:           "Diligent",
		UnlockedTitle:   "Taskmaster",
		StatToTrack:     domain.StatTasksCompleted,
		UnlockThreshold: 10,
	}
)

func newTestService(t *testing.T) (Service, *repository.FakeStatsRepository, *repository.FakeAchievementRepository, *event.MemoryBus) {
	t.Helper()
	statsRepo := repository.NewFakeStatsRepository()
	achRepo := repository.NewFakeAchievementRepository()
	achRepo.Stats = statsRepo
	achRepo.SeedCatalog(achLevelFive, achTenTasks)
	bus := event.NewMemoryBus()
	return NewService(achRepo, statsRepo, bus), statsRepo, achRepo, bus
}

func seedStats(repo *repository.FakeStatsRepository, level, tasksCompleted int) {
	stats := domain.NewUserStats(testUserID, "")
	stats.Level = level
	stats.Progress[domain.StatTasksCompleted] = tasksCompleted
	repo.Seed(stats)
}

func TestEvaluateForUser_NoQualifyingAchievements(t *testing.T) {
	svc, statsRepo, _, _ := newTestService(t)
	seedStats(statsRepo, 1, 0)

	unlocked, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEvaluateForUser_LevelThreshold(t *testing.T) {
	svc, statsRepo, _, _ := newTestService(t)
	seedStats(statsRepo, 5, 0)

	unlocked, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)

	require.Len(t, unlocked, 1)
	assert.Equal(t, achLevelFive.ID, unlocked[0].ID)
}

func TestEvaluateForUser_CounterThreshold(t *testing.T) {
	svc, statsRepo, _, _ := newTestService(t)
	seedStats(statsRepo, 1, 10)

	unlocked, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)

	require.Len(t, unlocked, 1)
	assert.Equal(t, achTenTasks.ID, unlocked[0].ID)
}

func TestEvaluateForUser_UnlocksAtMostOnce(t *testing.T) {
	svc, statsRepo, _, _ := newTestService(t)
	seedStats(statsRepo, 5, 0)

	first, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestEvaluateForUser_GrantsTitleOnlyWhenEmpty(t *testing.T) {
	svc, statsRepo, _, _ := newTestService(t)
	seedStats(statsRepo, 5, 10)

	unlocked, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, unlocked, 2)

	// Only the first unlock may write the selected title.
	stats, err := statsRepo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, unlocked[0].UnlockedTitle, stats.SelectedTitle)
}

func TestEvaluateForUser_PublishesUnlockEvent(t *testing.T) {
	svc, statsRepo, _, bus := newTestService(t)
	seedStats(statsRepo, 5, 0)

	var got *domain.AchievementUnlockedPayload
	bus.Subscribe(event.Type(domain.EventTypeAchievementUnlocked), func(ctx context.Context, e event.Event) error {
		p := e.Payload.(domain.AchievementUnlockedPayload)
		got = &p
		return nil
	})

	_, err := svc.EvaluateForUser(context.Background(), testUserID)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, achLevelFive.ID, got.AchievementID)
	assert.True(t, got.TitleGranted)
}

func TestRegisterHandlers_EvaluatesOnRewardGranted(t *testing.T) {
	svc, statsRepo, achRepo, bus := newTestService(t)
	seedStats(statsRepo, 5, 0)
	svc.RegisterHandlers(bus)

	err := bus.Publish(context.Background(), event.NewRewardGrantedEvent(testUserID, domain.RewardResult{XPGranted: 10}))
	require.NoError(t, err)

	held, err := achRepo.ListUnlocked(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestListAchievements_CachesCatalog(t *testing.T) {
	svc, _, achRepo, _ := newTestService(t)

	first, err := svc.ListAchievements(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// A catalog change is invisible until the TTL lapses.
	achRepo.SeedCatalog(achLevelFive)
	second, err := svc.ListAchievements(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
