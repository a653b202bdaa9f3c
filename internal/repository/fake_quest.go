package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeQuestRepository is a stateful in-memory QuestRepository for tests.
// The reset transaction needs the owning user's lastResetDate, so Stats
// must be set before BeginResetTx is used. Tasks, when set, lets
// ResetCompletedDailies flip real task rows.
type FakeQuestRepository struct {
	mu     sync.Mutex
	pool   []domain.QuestTemplate
	active map[string]*domain.ActiveQuest

	Stats *FakeStatsRepository
	Tasks *FakeTaskRepository
}

// NewFakeQuestRepository creates an empty fake
func NewFakeQuestRepository() *FakeQuestRepository {
	return &FakeQuestRepository{active: make(map[string]*domain.ActiveQuest)}
}

// SeedPool replaces the shared quest pool.
func (f *FakeQuestRepository) SeedPool(templates ...domain.QuestTemplate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pool = append([]domain.QuestTemplate{}, templates...)
}

func (f *FakeQuestRepository) ListQuestPool(ctx context.Context) ([]domain.QuestTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.QuestTemplate{}, f.pool...), nil
}

func (f *FakeQuestRepository) ListActiveQuests(ctx context.Context, ownerID string) ([]domain.ActiveQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ActiveQuest
	for _, q := range f.active {
		if q.OwnerID == ownerID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *FakeQuestRepository) GetActiveQuest(ctx context.Context, questID string) (*domain.ActiveQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.active[questID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	c := *q
	return &c, nil
}

func (f *FakeQuestRepository) SetQuestComplete(ctx context.Context, questID string, complete bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.active[questID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	if complete && q.IsComplete {
		return fmt.Errorf("%w: quest %s", domain.ErrAlreadyComplete, questID)
	}
	q.IsComplete = complete
	return nil
}

func (f *FakeQuestRepository) BeginResetTx(ctx context.Context) (ResetTx, error) {
	return &fakeResetTx{repo: f}, nil
}

// fakeResetTx applies writes immediately. The services under test only
// exercise the committed path, so staged rollback is not modeled here.
type fakeResetTx struct {
	repo *FakeQuestRepository
	done bool
}

func (t *fakeResetTx) Commit(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *fakeResetTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *fakeResetTx) GetLastResetDateForUpdate(ctx context.Context, userID string) (string, error) {
	stats, err := t.repo.Stats.GetStats(ctx, userID)
	if err != nil {
		return "", err
	}
	return stats.LastResetDate, nil
}

func (t *fakeResetTx) SetLastResetDate(ctx context.Context, userID, date string) error {
	t.repo.Stats.mu.Lock()
	defer t.repo.Stats.mu.Unlock()
	s, ok := t.repo.Stats.stats[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	s.LastResetDate = date
	return nil
}

func (t *fakeResetTx) ResetCompletedDailies(ctx context.Context, ownerID string) (int, error) {
	if t.repo.Tasks == nil {
		return 0, nil
	}
	t.repo.Tasks.mu.Lock()
	defer t.repo.Tasks.mu.Unlock()
	count := 0
	for _, task := range t.repo.Tasks.tasks {
		if task.OwnerID == ownerID && task.Type == domain.TaskTypeDaily && task.IsComplete {
			task.IsComplete = false
			count++
		}
	}
	return count, nil
}

func (t *fakeResetTx) DeleteActiveQuests(ctx context.Context, ownerID string) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for id, q := range t.repo.active {
		if q.OwnerID == ownerID {
			delete(t.repo.active, id)
		}
	}
	return nil
}

func (t *fakeResetTx) InsertActiveQuests(ctx context.Context, ownerID string, quests []domain.ActiveQuest) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, q := range quests {
		c := q
		t.repo.active[q.ID] = &c
	}
	return nil
}
