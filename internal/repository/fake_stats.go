package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeStatsRepository is a stateful in-memory StatsRepository for tests.
// It stays outside _test.go files so service packages can share it.
type FakeStatsRepository struct {
	mu    sync.Mutex
	stats map[string]*domain.UserStats

	// BeginTxErr, when set, is returned from BeginTx to exercise error paths.
	BeginTxErr error
}

// NewFakeStatsRepository creates an empty fake
func NewFakeStatsRepository() *FakeStatsRepository {
	return &FakeStatsRepository{stats: make(map[string]*domain.UserStats)}
}

// Seed stores a stats document directly, bypassing CreateStats.
func (f *FakeStatsRepository) Seed(stats *domain.UserStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[stats.UID] = copyStats(stats)
}

func copyStats(s *domain.UserStats) *domain.UserStats {
	c := *s
	c.Progress = make(map[string]int, len(s.Progress))
	for k, v := range s.Progress {
		c.Progress[k] = v
	}
	return &c
}

func (f *FakeStatsRepository) CreateStats(ctx context.Context, stats *domain.UserStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stats[stats.UID]; ok {
		return nil
	}
	f.stats[stats.UID] = copyStats(stats)
	return nil
}

func (f *FakeStatsRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stats[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return copyStats(s), nil
}

func (f *FakeStatsRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.stats))
	for id := range f.stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FakeStatsRepository) UpdateTitle(ctx context.Context, userID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stats[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	s.SelectedTitle = title
	return nil
}

func (f *FakeStatsRepository) UpdateTheme(ctx context.Context, userID, theme string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stats[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	s.ActiveTheme = theme
	return nil
}

func (f *FakeStatsRepository) BeginTx(ctx context.Context) (StatsTx, error) {
	if f.BeginTxErr != nil {
		return nil, f.BeginTxErr
	}
	return &fakeStatsTx{repo: f}, nil
}

// fakeStatsTx buffers writes until Commit so rollback paths leave the fake
// untouched, matching real transaction behavior.
type fakeStatsTx struct {
	repo    *FakeStatsRepository
	pending *domain.UserStats
	done    bool
}

func (t *fakeStatsTx) GetStatsForUpdate(ctx context.Context, userID string) (*domain.UserStats, error) {
	return t.repo.GetStats(ctx, userID)
}

func (t *fakeStatsTx) UpdateStats(ctx context.Context, stats *domain.UserStats) error {
	t.pending = copyStats(stats)
	return nil
}

func (t *fakeStatsTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if t.pending != nil {
		t.repo.mu.Lock()
		t.repo.stats[t.pending.UID] = t.pending
		t.repo.mu.Unlock()
	}
	return nil
}

func (t *fakeStatsTx) Rollback(ctx context.Context) error {
	t.done = true
	t.pending = nil
	return nil
}
