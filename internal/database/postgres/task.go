package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// TaskRepository implements the task repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (task_id, owner_id, title, is_complete, xp, task_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		task.ID, task.OwnerID, task.Title, task.IsComplete, task.XP, task.Type, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT task_id, owner_id, title, is_complete, xp, task_type, created_at
		FROM tasks WHERE task_id = $1
	`
	var task domain.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.IsComplete, &task.XP, &task.Type, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := `
		SELECT task_id, owner_id, title, is_complete, xp, task_type, created_at
		FROM tasks WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.IsComplete,
			&task.XP, &task.Type, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// SetTaskComplete flips the completion flag. Setting it true is conditional
// on the current value, which makes it the reward double-grant guard.
func (r *TaskRepository) SetTaskComplete(ctx context.Context, taskID string, complete bool) error {
	var tag string
	var args []interface{}
	if complete {
		tag = `UPDATE tasks SET is_complete = TRUE WHERE task_id = $1 AND is_complete = FALSE`
		args = []interface{}{taskID}
	} else {
		tag = `UPDATE tasks SET is_complete = FALSE WHERE task_id = $1`
		args = []interface{}{taskID}
	}

	result, err := r.db.Exec(ctx, tag, args...)
	if err != nil {
		return fmt.Errorf("failed to update task completion: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Distinguish missing from already complete.
		if _, err := r.GetTask(ctx, taskID); err != nil {
			return err
		}
		if complete {
			return fmt.Errorf("%w: task %s", domain.ErrAlreadyComplete, taskID)
		}
	}
	return nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return nil
}
