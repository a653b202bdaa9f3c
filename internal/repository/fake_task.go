package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeTaskRepository is a stateful in-memory TaskRepository for tests.
type FakeTaskRepository struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

// NewFakeTaskRepository creates an empty fake
func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (f *FakeTaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *task
	f.tasks[task.ID] = &c
	return nil
}

func (f *FakeTaskRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	c := *t
	return &c, nil
}

func (f *FakeTaskRepository) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Task
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeTaskRepository) SetTaskComplete(ctx context.Context, taskID string, complete bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if complete && t.IsComplete {
		return fmt.Errorf("%w: task %s", domain.ErrAlreadyComplete, taskID)
	}
	t.IsComplete = complete
	return nil
}

func (f *FakeTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[taskID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	delete(f.tasks, taskID)
	return nil
}
