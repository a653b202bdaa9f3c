package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// Service owns user tasks and the completion reward flow.
type Service interface {
	CreateTask(ctx context.Context, ownerID, title, taskType string, xp int) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	// CompleteTask marks the task done and grants its rewards. Completing an
	// already-complete task returns ErrAlreadyComplete and grants nothing.
	CompleteTask(ctx context.Context, userID, taskID string) (*domain.RewardResult, error)
	// UncompleteTask reopens a task. Rewards already granted stay granted.
	UncompleteTask(ctx context.Context, userID, taskID string) error
}

type service struct {
	repo    repository.TaskRepository
	rewards progression.Service
	bus     event.Bus
}

// NewService creates a new task service
func NewService(repo repository.TaskRepository, rewards progression.Service, bus event.Bus) Service {
	return &service{repo: repo, rewards: rewards, bus: bus}
}

func (s *service) CreateTask(ctx context.Context, ownerID, title, taskType string, xp int) (*domain.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if taskType != domain.TaskTypeDaily && taskType != domain.TaskTypeTodo {
		return nil, fmt.Errorf("%w: unknown task type %q", domain.ErrInvalidInput, taskType)
	}
	if xp < 0 {
		return nil, fmt.Errorf("%w: xp must be non-negative", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		XP:        xp,
		Type:      taskType,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *service) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.ownedTask(ctx, userID, taskID)
}

func (s *service) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx, ownerID)
}

func (s *service) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, taskID)
}

func (s *service) CompleteTask(ctx context.Context, userID, taskID string) (*domain.RewardResult, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsComplete {
		return nil, fmt.Errorf("%w: task %s", domain.ErrAlreadyComplete, taskID)
	}

	// The conditional update is the double-completion gate: of two racing
	// requests only one flips the flag, the other gets ErrAlreadyComplete.
	if err := s.repo.SetTaskComplete(ctx, taskID, true); err != nil {
		return nil, err
	}

	xp := task.RewardXP()
	result, err := s.rewards.GrantRewards(ctx, userID, progression.GrantRequest{
		XP:          xp,
		Coins:       domain.DefaultTaskCoins,
		Progress:    map[string]int{domain.StatTasksCompleted: 1},
		TouchStreak: true,
	})
	if err != nil {
		return nil, fmt.Errorf("grant task rewards: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewTaskCompletedEvent(userID, task.ID, task.Title, xp, domain.DefaultTaskCoins)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish task completed event", "task_id", task.ID, "error", err)
	}

	return result, nil
}

func (s *service) UncompleteTask(ctx context.Context, userID, taskID string) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !task.IsComplete {
		return nil
	}
	return s.repo.SetTaskComplete(ctx, taskID, false)
}

// ownedTask fetches a task and hides other users' tasks behind not-found.
func (s *service) ownedTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return task, nil
}
