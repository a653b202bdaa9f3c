package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeBossRepository is a stateful in-memory BossRepository for tests.
type FakeBossRepository struct {
	mu      sync.Mutex
	bosses  map[string]*domain.Boss
	attacks map[string]*domain.BossAttack
}

// NewFakeBossRepository creates an empty fake
func NewFakeBossRepository() *FakeBossRepository {
	return &FakeBossRepository{
		bosses:  make(map[string]*domain.Boss),
		attacks: make(map[string]*domain.BossAttack),
	}
}

func (f *FakeBossRepository) CreateBoss(ctx context.Context, boss *domain.Boss) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *boss
	f.bosses[boss.ID] = &c
	return nil
}

func (f *FakeBossRepository) GetBoss(ctx context.Context, bossID string) (*domain.Boss, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getBossLocked(bossID)
}

func (f *FakeBossRepository) getBossLocked(bossID string) (*domain.Boss, error) {
	b, ok := f.bosses[bossID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossID)
	}
	c := *b
	return &c, nil
}

func (f *FakeBossRepository) ListBosses(ctx context.Context, ownerID string) ([]domain.Boss, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Boss
	for _, b := range f.bosses {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeBossRepository) CreateAttack(ctx context.Context, attack *domain.BossAttack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bosses[attack.BossID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrBossNotFound, attack.BossID)
	}
	c := *attack
	f.attacks[attack.ID] = &c
	return nil
}

func (f *FakeBossRepository) ListAttacks(ctx context.Context, bossID string) ([]domain.BossAttack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BossAttack
	for _, a := range f.attacks {
		if a.BossID == bossID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeBossRepository) BeginTx(ctx context.Context) (BossTx, error) {
	return &fakeBossTx{repo: f}, nil
}

type fakeBossTx struct {
	repo *FakeBossRepository
	done bool
}

func (t *fakeBossTx) Commit(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *fakeBossTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *fakeBossTx) GetAttackForUpdate(ctx context.Context, attackID string) (*domain.BossAttack, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	a, ok := t.repo.attacks[attackID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttackNotFound, attackID)
	}
	c := *a
	return &c, nil
}

func (t *fakeBossTx) GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	return t.repo.getBossLocked(bossID)
}

func (t *fakeBossTx) MarkAttackComplete(ctx context.Context, attackID string) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	a, ok := t.repo.attacks[attackID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAttackNotFound, attackID)
	}
	if a.IsComplete {
		return fmt.Errorf("%w: attack %s", domain.ErrAlreadyComplete, attackID)
	}
	a.IsComplete = true
	return nil
}

func (t *fakeBossTx) UpdateBossHP(ctx context.Context, bossID string, currentHP int, complete bool) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	b, ok := t.repo.bosses[bossID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossID)
	}
	b.CurrentHP = currentHP
	b.IsComplete = complete
	return nil
}
