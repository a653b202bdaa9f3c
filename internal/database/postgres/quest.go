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

// QuestRepository implements the daily quest repository for PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) ListQuestPool(ctx context.Context) ([]domain.QuestTemplate, error) {
	rows, err := r.db.Query(ctx, `SELECT quest_id, title, xp FROM quest_pool`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest pool: %w", err)
	}
	defer rows.Close()

	var pool []domain.QuestTemplate
	for rows.Next() {
		var tpl domain.QuestTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Title, &tpl.XP); err != nil {
			return nil, fmt.Errorf("failed to scan quest template: %w", err)
		}
		pool = append(pool, tpl)
	}
	return pool, rows.Err()
}

func (r *QuestRepository) ListActiveQuests(ctx context.Context, ownerID string) ([]domain.ActiveQuest, error) {
	query := `
		SELECT active_quest_id, owner_id, original_quest_id, title, xp, is_complete, created_at
		FROM active_quests WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.ActiveQuest
	for rows.Next() {
		var q domain.ActiveQuest
		if err := rows.Scan(&q.ID, &q.OwnerID, &q.OriginalQuestID, &q.Title,
			&q.XP, &q.IsComplete, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active quest: %w", err)
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

func (r *QuestRepository) GetActiveQuest(ctx context.Context, questID string) (*domain.ActiveQuest, error) {
	query := `
		SELECT active_quest_id, owner_id, original_quest_id, title, xp, is_complete, created_at
		FROM active_quests WHERE active_quest_id = $1
	`
	var q domain.ActiveQuest
	err := r.db.QueryRow(ctx, query, questID).Scan(
		&q.ID, &q.OwnerID, &q.OriginalQuestID, &q.Title, &q.XP, &q.IsComplete, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
		}
		return nil, fmt.Errorf("failed to get active quest: %w", err)
	}
	return &q, nil
}

func (r *QuestRepository) SetQuestComplete(ctx context.Context, questID string, complete bool) error {
	var query string
	if complete {
		query = `UPDATE active_quests SET is_complete = TRUE WHERE active_quest_id = $1 AND is_complete = FALSE`
	} else {
		query = `UPDATE active_quests SET is_complete = FALSE WHERE active_quest_id = $1`
	}

	result, err := r.db.Exec(ctx, query, questID)
	if err != nil {
		return fmt.Errorf("failed to update quest completion: %w", err)
	}
	if result.RowsAffected() == 0 {
		if _, err := r.GetActiveQuest(ctx, questID); err != nil {
			return err
		}
		if complete {
			return fmt.Errorf("%w: quest %s", domain.ErrAlreadyComplete, questID)
		}
	}
	return nil
}

func (r *QuestRepository) BeginResetTx(ctx context.Context) (repository.ResetTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &resetTx{tx: tx}, nil
}

// resetTx runs the daily rollover. All writes ride one transaction so a
// crash mid-reset leaves yesterday's state fully intact.
type resetTx struct {
	tx pgx.Tx
}

func (t *resetTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *resetTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (t *resetTx) GetLastResetDateForUpdate(ctx context.Context, userID string) (string, error) {
	var date string
	err := t.tx.QueryRow(ctx,
		`SELECT last_reset_date FROM user_stats WHERE user_id = $1 FOR UPDATE`,
		userID).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return "", fmt.Errorf("failed to get last reset date: %w", err)
	}
	return date, nil
}

func (t *resetTx) SetLastResetDate(ctx context.Context, userID, date string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE user_stats SET last_reset_date = $1, updated_at = NOW() WHERE user_id = $2`,
		date, userID)
	if err != nil {
		return fmt.Errorf("failed to set last reset date: %w", err)
	}
	return nil
}

func (t *resetTx) ResetCompletedDailies(ctx context.Context, ownerID string) (int, error) {
	result, err := t.tx.Exec(ctx,
		`UPDATE tasks SET is_complete = FALSE WHERE owner_id = $1 AND task_type = $2 AND is_complete = TRUE`,
		ownerID, domain.TaskTypeDaily)
	if err != nil {
		return 0, fmt.Errorf("failed to reset dailies: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (t *resetTx) DeleteActiveQuests(ctx context.Context, ownerID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM active_quests WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete active quests: %w", err)
	}
	return nil
}

func (t *resetTx) InsertActiveQuests(ctx context.Context, ownerID string, quests []domain.ActiveQuest) error {
	for _, q := range quests {
		_, err := t.tx.Exec(ctx, `
			INSERT INTO active_quests (active_quest_id, owner_id, original_quest_id, title, xp, is_complete, created_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		`, q.ID, ownerID, q.OriginalQuestID, q.Title, q.XP, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert active quest: %w", err)
		}
	}
	return nil
}
