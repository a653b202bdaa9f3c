package repository

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// StatsRepository defines the interface for user stats data operations
type StatsRepository interface {
	CreateStats(ctx context.Context, stats *domain.UserStats) error
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	// ListUserIDs returns every known user, for the overnight sweep.
	ListUserIDs(ctx context.Context) ([]string, error)
	UpdateTitle(ctx context.Context, userID, title string) error
	UpdateTheme(ctx context.Context, userID, theme string) error
	BeginTx(ctx context.Context) (StatsTx, error)
}

// StatsTx exposes stats operations inside a transaction. GetStatsForUpdate
// locks the row so concurrent reward grants serialize on the same user and
// every increment applies to the balance it actually read.
type StatsTx interface {
	Tx
	GetStatsForUpdate(ctx context.Context, userID string) (*domain.UserStats, error)
	UpdateStats(ctx context.Context, stats *domain.UserStats) error
}
