package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// BossRepository implements the boss repository for PostgreSQL
type BossRepository struct {
	db *pgxpool.Pool
}

// NewBossRepository creates a new BossRepository
func NewBossRepository(db *pgxpool.Pool) *BossRepository {
	return &BossRepository{db: db}
}

func (r *BossRepository) CreateBoss(ctx context.Context, boss *domain.Boss) error {
	query := `
		INSERT INTO bosses (boss_id, owner_id, boss_name, total_hp, current_hp, is_complete, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		boss.ID, boss.OwnerID, boss.Name, boss.TotalHP, boss.CurrentHP,
		boss.IsComplete, string(boss.Difficulty), boss.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert boss: %w", err)
	}
	return nil
}

func (r *BossRepository) GetBoss(ctx context.Context, bossID string) (*domain.Boss, error) {
	query := `
		SELECT boss_id, owner_id, boss_name, total_hp, current_hp, is_complete, difficulty, created_at
		FROM bosses WHERE boss_id = $1
	`
	return scanBoss(r.db.QueryRow(ctx, query, bossID), bossID)
}

func (r *BossRepository) ListBosses(ctx context.Context, ownerID string) ([]domain.Boss, error) {
	query := `
		SELECT boss_id, owner_id, boss_name, total_hp, current_hp, is_complete, difficulty, created_at
		FROM bosses WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bosses: %w", err)
	}
	defer rows.Close()

	var bosses []domain.Boss
	for rows.Next() {
		var b domain.Boss
		var difficulty string
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.TotalHP, &b.CurrentHP,
			&b.IsComplete, &difficulty, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan boss: %w", err)
		}
		b.Difficulty = domain.Difficulty(difficulty)
		bosses = append(bosses, b)
	}
	return bosses, rows.Err()
}

func (r *BossRepository) CreateAttack(ctx context.Context, attack *domain.BossAttack) error {
	query := `
		INSERT INTO boss_attacks (attack_id, boss_id, title, base_damage, attribute, xp, coins, is_complete, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		attack.ID, attack.BossID, attack.Title, attack.BaseDamage,
		string(attack.Attribute), attack.XP, attack.Coins, attack.IsComplete, attack.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert boss attack: %w", err)
	}
	return nil
}

func (r *BossRepository) ListAttacks(ctx context.Context, bossID string) ([]domain.BossAttack, error) {
	query := `
		SELECT attack_id, boss_id, title, base_damage, attribute, xp, coins, is_complete, created_at
		FROM boss_attacks WHERE boss_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, bossID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boss attacks: %w", err)
	}
	defer rows.Close()

	var attacks []domain.BossAttack
	for rows.Next() {
		var a domain.BossAttack
		var attribute string
		if err := rows.Scan(&a.ID, &a.BossID, &a.Title, &a.BaseDamage, &attribute,
			&a.XP, &a.Coins, &a.IsComplete, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan boss attack: %w", err)
		}
		a.Attribute = domain.Attribute(attribute)
		attacks = append(attacks, a)
	}
	return attacks, rows.Err()
}

func (r *BossRepository) BeginTx(ctx context.Context) (repository.BossTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &bossTx{tx: tx}, nil
}

type bossTx struct {
	tx pgx.Tx
}

func (t *bossTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *bossTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (t *bossTx) GetAttackForUpdate(ctx context.Context, attackID string) (*domain.BossAttack, error) {
	query := `
		SELECT attack_id, boss_id, title, base_damage, attribute, xp, coins, is_complete, created_at
		FROM boss_attacks WHERE attack_id = $1
		FOR UPDATE
	`
	var a domain.BossAttack
	var attribute string
	err := t.tx.QueryRow(ctx, query, attackID).Scan(
		&a.ID, &a.BossID, &a.Title, &a.BaseDamage, &attribute,
		&a.XP, &a.Coins, &a.IsComplete, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAttackNotFound, attackID)
		}
		return nil, fmt.Errorf("failed to get boss attack: %w", err)
	}
	a.Attribute = domain.Attribute(attribute)
	return &a, nil
}

func (t *bossTx) GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error) {
	query := `
		SELECT boss_id, owner_id, boss_name, total_hp, current_hp, is_complete, difficulty, created_at
		FROM bosses WHERE boss_id = $1
		FOR UPDATE
	`
	return scanBoss(t.tx.QueryRow(ctx, query, bossID), bossID)
}

func (t *bossTx) MarkAttackComplete(ctx context.Context, attackID string) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE boss_attacks SET is_complete = TRUE WHERE attack_id = $1 AND is_complete = FALSE`,
		attackID)
	if err != nil {
		return fmt.Errorf("failed to mark attack complete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: attack %s", domain.ErrAlreadyComplete, attackID)
	}
	return nil
}

func (t *bossTx) UpdateBossHP(ctx context.Context, bossID string, currentHP int, complete bool) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE bosses SET current_hp = $1, is_complete = $2 WHERE boss_id = $3`,
		currentHP, complete, bossID)
	if err != nil {
		return fmt.Errorf("failed to update boss hp: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossID)
	}
	return nil
}

func scanBoss(row pgx.Row, bossID string) (*domain.Boss, error) {
	var b domain.Boss
	var difficulty string
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.TotalHP, &b.CurrentHP,
		&b.IsComplete, &difficulty, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossID)
		}
		return nil, fmt.Errorf("failed to get boss: %w", err)
	}
	b.Difficulty = domain.Difficulty(difficulty)
	return &b, nil
}
