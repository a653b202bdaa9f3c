package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/JackRiiley/life-rpg-app/internal/database"
	"github.com/JackRiiley/life-rpg-app/internal/database/schema"
	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/eventlog"
)

// setupTestDB starts a throwaway Postgres container, applies the schema
// and returns a connected pool. Tests are skipped when Docker is not
// available.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		t.Skip("no container available")
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr, 5, 30*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema.SchemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return pool
}

func mustCreateUser(t *testing.T, pool *pgxpool.Pool, userID string, coins int) {
	t.Helper()

	ctx := context.Background()
	repo := NewStatsRepository(pool)

	stats := domain.NewUserStats(userID, userID+"@example.com")
	stats.Coins = coins
	if err := repo.CreateStats(ctx, stats); err != nil {
		t.Fatalf("failed to create user %s: %v", userID, err)
	}
}

func TestStatsRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository(pool)

	t.Run("CreateAndGet", func(t *testing.T) {
		mustCreateUser(t, pool, "stats-user", 0)

		got, err := repo.GetStats(ctx, "stats-user")
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if got.Level != 1 || got.Rank != domain.RankE {
			t.Errorf("unexpected fresh stats: level=%d rank=%s", got.Level, got.Rank)
		}
		if got.XPToNextLevel != domain.InitialXPToNextLevel {
			t.Errorf("expected threshold %d, got %d", domain.InitialXPToNextLevel, got.XPToNextLevel)
		}
	})

	t.Run("CreateIsIdempotent", func(t *testing.T) {
		mustCreateUser(t, pool, "stats-dup", 0)

		dup := domain.NewUserStats("stats-dup", "other@example.com")
		dup.Coins = 999
		if err := repo.CreateStats(ctx, dup); err != nil {
			t.Fatalf("second CreateStats failed: %v", err)
		}

		got, err := repo.GetStats(ctx, "stats-dup")
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if got.Coins != 0 {
			t.Errorf("duplicate create overwrote existing row: coins=%d", got.Coins)
		}
	})

	t.Run("GetMissingUser", func(t *testing.T) {
		_, err := repo.GetStats(ctx, "no-such-user")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("TransactionalUpdate", func(t *testing.T) {
		mustCreateUser(t, pool, "stats-tx", 10)

		tx, err := repo.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}

		stats, err := tx.GetStatsForUpdate(ctx, "stats-tx")
		if err != nil {
			t.Fatalf("GetStatsForUpdate failed: %v", err)
		}
		stats.Coins += 40
		stats.Progression.CurrentXP = 55
		if err := tx.UpdateStats(ctx, stats); err != nil {
			t.Fatalf("UpdateStats failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		got, err := repo.GetStats(ctx, "stats-tx")
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if got.Coins != 50 || got.CurrentXP != 55 {
			t.Errorf("update not visible: coins=%d xp=%d", got.Coins, got.CurrentXP)
		}
	})

	t.Run("ListUserIDs", func(t *testing.T) {
		ids, err := repo.ListUserIDs(ctx)
		if err != nil {
			t.Fatalf("ListUserIDs failed: %v", err)
		}
		if len(ids) < 3 {
			t.Errorf("expected at least 3 users, got %d", len(ids))
		}
	})
}

func TestTaskRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(pool)

	mustCreateUser(t, pool, "task-user", 0)

	newTask := func(title string) *domain.Task {
		return &domain.Task{
			ID:        uuid.NewString(),
			OwnerID:   "task-user",
			Title:     title,
			XP:        25,
			Type:      domain.TaskTypeTodo,
			CreatedAt: time.Now().UTC(),
		}
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		task := newTask("Read a chapter")
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}

		got, err := repo.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if got.Title != "Read a chapter" || got.IsComplete {
			t.Errorf("unexpected task: %+v", got)
		}
	})

	t.Run("DoubleCompleteRejected", func(t *testing.T) {
		task := newTask("Go for a run")
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}

		if err := repo.SetTaskComplete(ctx, task.ID, true); err != nil {
			t.Fatalf("first completion failed: %v", err)
		}
		err := repo.SetTaskComplete(ctx, task.ID, true)
		if !errors.Is(err, domain.ErrAlreadyComplete) {
			t.Errorf("expected ErrAlreadyComplete, got %v", err)
		}

		// Uncomplete reopens the gate
		if err := repo.SetTaskComplete(ctx, task.ID, false); err != nil {
			t.Fatalf("uncomplete failed: %v", err)
		}
		if err := repo.SetTaskComplete(ctx, task.ID, true); err != nil {
			t.Fatalf("re-completion failed: %v", err)
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		err := repo.DeleteTask(ctx, uuid.NewString())
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestShopRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewShopRepository(pool)

	t.Run("PurchaseFlow", func(t *testing.T) {
		mustCreateUser(t, pool, "shop-user", 200)

		item, err := repo.GetItem(ctx, "theme-dark")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}

		remaining, err := repo.PurchaseItem(ctx, "shop-user", *item)
		if err != nil {
			t.Fatalf("PurchaseItem failed: %v", err)
		}
		if remaining != 200-item.Cost {
			t.Errorf("expected %d coins remaining, got %d", 200-item.Cost, remaining)
		}

		_, err = repo.PurchaseItem(ctx, "shop-user", *item)
		if !errors.Is(err, domain.ErrAlreadyOwned) {
			t.Errorf("expected ErrAlreadyOwned, got %v", err)
		}

		owned, err := repo.ListUnlocked(ctx, "shop-user")
		if err != nil {
			t.Fatalf("ListUnlocked failed: %v", err)
		}
		if len(owned) != 1 || owned[0].ItemID != "theme-dark" {
			t.Errorf("unexpected unlocked items: %+v", owned)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		mustCreateUser(t, pool, "shop-poor", 5)

		item, err := repo.GetItem(ctx, "badge-crown")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}

		_, err = repo.PurchaseItem(ctx, "shop-poor", *item)
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}

		// Balance must be untouched after the failed purchase
		stats, err := NewStatsRepository(pool).GetStats(ctx, "shop-poor")
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if stats.Coins != 5 {
			t.Errorf("failed purchase changed balance: coins=%d", stats.Coins)
		}
	})
}

func TestEventLogRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewEventLogRepository(pool)

	payload := domain.TaskCompletedPayload{
		UserID:    "audit-user",
		TaskID:    uuid.NewString(),
		Title:     "Stretch",
		XPGranted: 10,
	}

	if err := repo.LogEvent(ctx, domain.EventTypeTaskCompleted, "audit-user", "1.0", payload); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
	if err := repo.LogEvent(ctx, domain.EventTypeLevelUp, "other-user", "1.0", domain.LevelUpPayload{UserID: "other-user", NewLevel: 2}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	events, err := repo.GetEventsByUser(ctx, "audit-user", 10)
	if err != nil {
		t.Fatalf("GetEventsByUser failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != domain.EventTypeTaskCompleted {
		t.Fatalf("unexpected events: %+v", events)
	}

	byType, err := repo.GetEventsByType(ctx, domain.EventTypeLevelUp, 10)
	if err != nil {
		t.Fatalf("GetEventsByType failed: %v", err)
	}
	if len(byType) != 1 {
		t.Errorf("expected 1 level-up event, got %d", len(byType))
	}

	filtered, err := repo.GetEvents(ctx, eventlog.EventFilter{Limit: 10})
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 events total, got %d", len(filtered))
	}

	// Fresh rows are inside any sane retention window
	deleted, err := repo.CleanupOldEvents(ctx, 30)
	if err != nil {
		t.Fatalf("CleanupOldEvents failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("cleanup deleted fresh rows: %d", deleted)
	}
}
