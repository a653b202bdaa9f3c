package repository

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// TaskRepository defines the interface for task data operations.
// SetTaskComplete with complete=true is conditional: it fails with
// ErrAlreadyComplete when the task is already done, so racing completions
// cannot both claim the reward.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	SetTaskComplete(ctx context.Context, taskID string, complete bool) error
	DeleteTask(ctx context.Context, taskID string) error
}

// QuestRepository defines the interface for daily quest data operations.
// BeginResetTx opens the transaction used for the atomic daily rollover.
type QuestRepository interface {
	ListQuestPool(ctx context.Context) ([]domain.QuestTemplate, error)
	ListActiveQuests(ctx context.Context, ownerID string) ([]domain.ActiveQuest, error)
	GetActiveQuest(ctx context.Context, questID string) (*domain.ActiveQuest, error)
	SetQuestComplete(ctx context.Context, questID string, complete bool) error
	BeginResetTx(ctx context.Context) (ResetTx, error)
}

// ResetTx covers every write the daily rollover makes, so the reset either
// lands in full or not at all.
type ResetTx interface {
	Tx
	GetLastResetDateForUpdate(ctx context.Context, userID string) (string, error)
	SetLastResetDate(ctx context.Context, userID, date string) error
	ResetCompletedDailies(ctx context.Context, ownerID string) (int, error)
	DeleteActiveQuests(ctx context.Context, ownerID string) error
	InsertActiveQuests(ctx context.Context, ownerID string, quests []domain.ActiveQuest) error
}
