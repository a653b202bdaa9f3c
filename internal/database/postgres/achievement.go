package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// AchievementRepository implements the achievement repository for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	query := `
		SELECT achievement_id, title, description, unlocked_title, stat_to_track, unlock_threshold
		FROM achievements
		ORDER BY stat_to_track, unlock_threshold
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.UnlockedTitle,
			&a.StatToTrack, &a.UnlockThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	query := `
		SELECT achievement_id, user_id, title, unlocked_title, unlocked_at
		FROM unlocked_achievements WHERE user_id = $1
		ORDER BY unlocked_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked achievements: %w", err)
	}
	defer rows.Close()

	var unlocked []domain.UnlockedAchievement
	for rows.Next() {
		var u domain.UnlockedAchievement
		if err := rows.Scan(&u.AchievementID, &u.UserID, &u.Title, &u.UnlockedTitle,
			&u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked achievement: %w", err)
		}
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

// UnlockAchievement grants the achievement in one transaction. The insert's
// conflict target is the exactly-once guard: of two racing evaluations only
// one insert lands, and only that one may grant the title.
func (r *AchievementRepository) UnlockAchievement(ctx context.Context, userID string, achievement domain.Achievement) (bool, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO unlocked_achievements (user_id, achievement_id, title, unlocked_title, unlocked_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	result, err := tx.Exec(ctx, insert, userID, achievement.ID, achievement.Title, achievement.UnlockedTitle)
	if err != nil {
		return false, false, fmt.Errorf("failed to insert unlocked achievement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, false, nil
	}

	titleGranted := false
	if achievement.UnlockedTitle != "" {
		update := `
			UPDATE user_stats SET selected_title = $1, updated_at = NOW()
			WHERE user_id = $2 AND selected_title = ''
		`
		tag, err := tx.Exec(ctx, update, achievement.UnlockedTitle, userID)
		if err != nil {
			return false, false, fmt.Errorf("failed to grant title: %w", err)
		}
		titleGranted = tag.RowsAffected() > 0
	}

	if err := tx.Commit(ctx); err != nil {
		return false, false, fmt.Errorf("failed to commit unlock: %w", err)
	}
	return true, titleGranted, nil
}
