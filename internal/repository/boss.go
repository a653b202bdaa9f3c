package repository

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// BossRepository defines the interface for boss and boss attack data operations
type BossRepository interface {
	CreateBoss(ctx context.Context, boss *domain.Boss) error
	GetBoss(ctx context.Context, bossID string) (*domain.Boss, error)
	ListBosses(ctx context.Context, ownerID string) ([]domain.Boss, error)
	CreateAttack(ctx context.Context, attack *domain.BossAttack) error
	ListAttacks(ctx context.Context, bossID string) ([]domain.BossAttack, error)
	BeginTx(ctx context.Context) (BossTx, error)
}

// BossTx exposes boss operations inside a transaction. The for-update reads
// lock both the attack and the boss so a double-submitted attack cannot
// apply its damage twice.
type BossTx interface {
	Tx
	GetAttackForUpdate(ctx context.Context, attackID string) (*domain.BossAttack, error)
	GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error)
	MarkAttackComplete(ctx context.Context, attackID string) error
	UpdateBossHP(ctx context.Context, bossID string, currentHP int, complete bool) error
}
