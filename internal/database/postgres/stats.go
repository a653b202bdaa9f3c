package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

const statsColumns = `user_id, email, level, current_xp, xp_to_next_level, attribute_points, rank,
		coins, selected_title, active_theme, strength, intellect, stamina, progress,
		current_streak, last_completed_date, last_reset_date, created_at, updated_at`

// StatsRepository implements the stats repository for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CreateStats(ctx context.Context, stats *domain.UserStats) error {
	progressJSON, err := json.Marshal(stats.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	query := `
		INSERT INTO user_stats (user_id, email, level, current_xp, xp_to_next_level, attribute_points, rank,
			coins, selected_title, active_theme, strength, intellect, stamina, progress,
			current_streak, last_completed_date, last_reset_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query,
		stats.UID, stats.Email, stats.Level, stats.CurrentXP, stats.XPToNextLevel,
		stats.AttributePoints, string(stats.Rank), stats.Coins, stats.SelectedTitle,
		stats.ActiveTheme, stats.Attributes.Strength, stats.Attributes.Intellect,
		stats.Attributes.Stamina, progressJSON, stats.CurrentStreak,
		stats.LastCompletedDate, stats.LastResetDate)
	if err != nil {
		return fmt.Errorf("failed to insert user stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_stats WHERE user_id = $1`, statsColumns)
	return scanStats(r.db.QueryRow(ctx, query, userID), userID)
}

func (r *StatsRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM user_stats ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *StatsRepository) UpdateTitle(ctx context.Context, userID, title string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_stats SET selected_title = $1, updated_at = NOW() WHERE user_id = $2`,
		title, userID)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

func (r *StatsRepository) UpdateTheme(ctx context.Context, userID, theme string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_stats SET active_theme = $1, updated_at = NOW() WHERE user_id = $2`,
		theme, userID)
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

func (r *StatsRepository) BeginTx(ctx context.Context) (repository.StatsTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &statsTx{tx: tx}, nil
}

type statsTx struct {
	tx pgx.Tx
}

func (t *statsTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *statsTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (t *statsTx) GetStatsForUpdate(ctx context.Context, userID string) (*domain.UserStats, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_stats WHERE user_id = $1 FOR UPDATE`, statsColumns)
	return scanStats(t.tx.QueryRow(ctx, query, userID), userID)
}

func (t *statsTx) UpdateStats(ctx context.Context, stats *domain.UserStats) error {
	progressJSON, err := json.Marshal(stats.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	query := `
		UPDATE user_stats
		SET level = $1, current_xp = $2, xp_to_next_level = $3, attribute_points = $4, rank = $5,
			coins = $6, selected_title = $7, active_theme = $8,
			strength = $9, intellect = $10, stamina = $11, progress = $12,
			current_streak = $13, last_completed_date = $14, last_reset_date = $15,
			updated_at = NOW()
		WHERE user_id = $16
	`
	tag, err := t.tx.Exec(ctx, query,
		stats.Level, stats.CurrentXP, stats.XPToNextLevel, stats.AttributePoints,
		string(stats.Rank), stats.Coins, stats.SelectedTitle, stats.ActiveTheme,
		stats.Attributes.Strength, stats.Attributes.Intellect, stats.Attributes.Stamina,
		progressJSON, stats.CurrentStreak, stats.LastCompletedDate, stats.LastResetDate,
		stats.UID)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, stats.UID)
	}
	return nil
}

func scanStats(row pgx.Row, userID string) (*domain.UserStats, error) {
	var (
		stats        domain.UserStats
		rank         string
		progressJSON []byte
	)
	err := row.Scan(
		&stats.UID, &stats.Email, &stats.Level, &stats.CurrentXP, &stats.XPToNextLevel,
		&stats.AttributePoints, &rank, &stats.Coins, &stats.SelectedTitle, &stats.ActiveTheme,
		&stats.Attributes.Strength, &stats.Attributes.Intellect, &stats.Attributes.Stamina,
		&progressJSON, &stats.CurrentStreak, &stats.LastCompletedDate, &stats.LastResetDate,
		&stats.CreatedAt, &stats.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	stats.Rank = domain.Rank(rank)
	stats.Progress = map[string]int{}
	if len(progressJSON) > 0 {
		if err := json.Unmarshal(progressJSON, &stats.Progress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
		}
	}
	return &stats, nil
}
