package dailyquest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
)

const testUserID = "user-1"

type fixture struct {
	svc       Service
	questRepo *repository.FakeQuestRepository
	taskRepo  *repository.FakeTaskRepository
	statsRepo *repository.FakeStatsRepository
	bus       *event.MemoryBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	statsRepo := repository.NewFakeStatsRepository()
	taskRepo := repository.NewFakeTaskRepository()
	questRepo := repository.NewFakeQuestRepository()
	questRepo.Stats = statsRepo
	questRepo.Tasks = taskRepo
	achRepo := repository.NewFakeAchievementRepository()
	achRepo.Stats = statsRepo
	shopRepo := repository.NewFakeShopRepository()
	shopRepo.Stats = statsRepo
	bus := event.NewMemoryBus()
	rewards := progression.NewService(statsRepo, achRepo, shopRepo, bus, time.UTC)

	statsRepo.Seed(domain.NewUserStats(testUserID, ""))
	questRepo.SeedPool(
		domain.QuestTemplate{ID: "q1", Title: "Stretch", XP: 15},
		domain.QuestTemplate{ID: "q2", Title: "Hydrate", XP: 10},
		domain.QuestTemplate{ID: "q3", Title: "Walk", XP: 25},
		domain.QuestTemplate{ID: "q4", Title: "Journal", XP: 20},
	)

	return &fixture{
		svc:       NewService(questRepo, rewards, bus, time.UTC),
		questRepo: questRepo,
		taskRepo:  taskRepo,
		statsRepo: statsRepo,
		bus:       bus,
	}
}

func TestEnsureDailyState_FirstRolloverOfDay(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)

	assert.True(t, result.DidReset)
	assert.Equal(t, domain.DailyQuestCount, result.QuestsRolled)
	assert.Equal(t, streak.Today(time.UTC), result.ResetDate)

	quests, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, quests, domain.DailyQuestCount)
	for _, q := range quests {
		assert.Equal(t, testUserID, q.OwnerID)
		assert.False(t, q.IsComplete)
		assert.NotEmpty(t, q.OriginalQuestID)
	}
}

func TestEnsureDailyState_IdempotentWithinDay(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	require.True(t, first.DidReset)

	before, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)

	second, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	assert.False(t, second.DidReset)

	after, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}

func TestEnsureDailyState_ReopensCompletedDailies(t *testing.T) {
	f := newFixture(t)
	daily := &domain.Task{ID: "t1", OwnerID: testUserID, Title: "Gym", Type: domain.TaskTypeDaily, IsComplete: true}
	todo := &domain.Task{ID: "t2", OwnerID: testUserID, Title: "Taxes", Type: domain.TaskTypeTodo, IsComplete: true}
	require.NoError(t, f.taskRepo.CreateTask(context.Background(), daily))
	require.NoError(t, f.taskRepo.CreateTask(context.Background(), todo))

	result, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TasksReset)

	gotDaily, err := f.taskRepo.GetTask(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, gotDaily.IsComplete)

	// Todos are untouched by the rollover.
	gotTodo, err := f.taskRepo.GetTask(context.Background(), "t2")
	require.NoError(t, err)
	assert.True(t, gotTodo.IsComplete)
}

func TestEnsureDailyState_ReplacesQuestSet(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	old, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)

	// Force yesterday's stamp so the next call rolls again.
	stats, err := f.statsRepo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	stats.LastResetDate = streak.DateString(time.Now().UTC().AddDate(0, 0, -1))
	f.statsRepo.Seed(stats)

	result, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	require.True(t, result.DidReset)

	fresh, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, fresh, domain.DailyQuestCount)
	for _, q := range fresh {
		for _, o := range old {
			assert.NotEqual(t, o.ID, q.ID)
		}
	}
}

func TestEnsureDailyState_SmallPoolRollsWholePool(t *testing.T) {
	f := newFixture(t)
	f.questRepo.SeedPool(domain.QuestTemplate{ID: "q1", Title: "Stretch", XP: 15})

	result, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.QuestsRolled)
}

func TestEnsureDailyState_PublishesEvent(t *testing.T) {
	f := newFixture(t)

	var got *domain.DailyResetPayload
	f.bus.Subscribe(event.Type(domain.EventTypeDailyReset), func(ctx context.Context, e event.Event) error {
		p := e.Payload.(domain.DailyResetPayload)
		got = &p
		return nil
	})

	_, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, domain.DailyQuestCount, got.QuestsRolled)
}

func TestCompleteQuest_GrantsRewards(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)

	quests, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)
	quest := quests[0]

	result, err := f.svc.CompleteQuest(context.Background(), testUserID, quest.ID)
	require.NoError(t, err)

	assert.Equal(t, quest.XP, result.XPGranted)
	assert.Equal(t, domain.DefaultTaskCoins, result.CoinsGranted)

	stats, err := f.statsRepo.GetStats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ProgressValue(domain.StatTasksCompleted))
}

func TestCompleteQuest_TwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.EnsureDailyState(context.Background(), testUserID)
	require.NoError(t, err)

	quests, err := f.svc.ListActiveQuests(context.Background(), testUserID)
	require.NoError(t, err)

	_, err = f.svc.CompleteQuest(context.Background(), testUserID, quests[0].ID)
	require.NoError(t, err)

	_, err = f.svc.CompleteQuest(context.Background(), testUserID, quests[0].ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyComplete)
}

func TestCompleteQuest_OtherUsersQuestIsHidden(t *testing.T) {
	f := newFixture(t)
	f.statsRepo.Seed(domain.NewUserStats("user-2", ""))
	_, err := f.svc.EnsureDailyState(context.Background(), "user-2")
	require.NoError(t, err)

	quests, err := f.svc.ListActiveQuests(context.Background(), "user-2")
	require.NoError(t, err)

	_, err = f.svc.CompleteQuest(context.Background(), testUserID, quests[0].ID)
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
}
