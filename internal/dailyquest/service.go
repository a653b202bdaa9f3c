package dailyquest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
)

// Service owns the per-user daily quest set and the lazy day rollover.
type Service interface {
	// EnsureDailyState performs the day rollover if the user has not had one
	// today: completed dailies reopen, yesterday's quest set is discarded and
	// a fresh one is rolled. It is called on first interaction of the day and
	// by the overnight sweep, and is idempotent per calendar day.
	EnsureDailyState(ctx context.Context, userID string) (*domain.DailyResetResult, error)
	ListActiveQuests(ctx context.Context, userID string) ([]domain.ActiveQuest, error)
	// CompleteQuest marks an active quest done and grants its rewards.
	CompleteQuest(ctx context.Context, userID, questID string) (*domain.RewardResult, error)
}

type service struct {
	repo    repository.QuestRepository
	rewards progression.Service
	bus     event.Bus
	loc     *time.Location
}

// NewService creates a new daily quest service
func NewService(repo repository.QuestRepository, rewards progression.Service, bus event.Bus, loc *time.Location) Service {
	return &service{repo: repo, rewards: rewards, bus: bus, loc: loc}
}

func (s *service) EnsureDailyState(ctx context.Context, userID string) (*domain.DailyResetResult, error) {
	today := streak.Today(s.loc)

	tx, err := s.repo.BeginResetTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin daily reset: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// The locked read serializes concurrent rollovers for one user: the
	// second transaction sees today's date and backs off.
	last, err := tx.GetLastResetDateForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if last == today {
		return &domain.DailyResetResult{DidReset: false, ResetDate: last}, nil
	}

	tasksReset, err := tx.ResetCompletedDailies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reset dailies: %w", err)
	}
	if err := tx.DeleteActiveQuests(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear active quests: %w", err)
	}

	quests, err := s.rollQuests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.InsertActiveQuests(ctx, userID, quests); err != nil {
		return nil, fmt.Errorf("insert active quests: %w", err)
	}
	if err := tx.SetLastResetDate(ctx, userID, today); err != nil {
		return nil, fmt.Errorf("stamp reset date: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit daily reset: %w", err)
	}

	result := &domain.DailyResetResult{
		DidReset:     true,
		TasksReset:   tasksReset,
		QuestsRolled: len(quests),
		ResetDate:    today,
	}

	logger.FromContext(ctx).Info("daily reset complete",
		"user_id", userID,
		"tasks_reset", result.TasksReset,
		"quests_rolled", result.QuestsRolled)

	if err := s.bus.Publish(ctx, event.NewDailyResetEvent(userID, *result)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish daily reset event", "user_id", userID, "error", err)
	}

	return result, nil
}

// rollQuests samples the quest pool without replacement. A pool smaller
// than the daily count yields the whole pool.
func (s *service) rollQuests(ctx context.Context, userID string) ([]domain.ActiveQuest, error) {
	pool, err := s.repo.ListQuestPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quest pool: %w", err)
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > domain.DailyQuestCount {
		pool = pool[:domain.DailyQuestCount]
	}

	now := time.Now()
	quests := make([]domain.ActiveQuest, 0, len(pool))
	for _, tpl := range pool {
		quests = append(quests, domain.ActiveQuest{
			ID:              uuid.NewString(),
			OwnerID:         userID,
			OriginalQuestID: tpl.ID,
			Title:           tpl.Title,
			XP:              tpl.XP,
			CreatedAt:       now,
		})
	}
	return quests, nil
}

func (s *service) ListActiveQuests(ctx context.Context, userID string) ([]domain.ActiveQuest, error) {
	return s.repo.ListActiveQuests(ctx, userID)
}

func (s *service) CompleteQuest(ctx context.Context, userID, questID string) (*domain.RewardResult, error) {
	quest, err := s.repo.GetActiveQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	if quest.IsComplete {
		return nil, fmt.Errorf("%w: quest %s", domain.ErrAlreadyComplete, questID)
	}

	if err := s.repo.SetQuestComplete(ctx, questID, true); err != nil {
		return nil, err
	}

	xp := quest.XP
	if xp <= 0 {
		xp = domain.DefaultTaskXP
	}
	result, err := s.rewards.GrantRewards(ctx, userID, progression.GrantRequest{
		XP:          xp,
		Coins:       domain.DefaultTaskCoins,
		Progress:    map[string]int{domain.StatTasksCompleted: 1},
		TouchStreak: true,
	})
	if err != nil {
		return nil, fmt.Errorf("grant quest rewards: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewTaskCompletedEvent(userID, quest.ID, quest.Title, xp, domain.DefaultTaskCoins)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish quest completed event", "quest_id", quest.ID, "error", err)
	}

	return result, nil
}
