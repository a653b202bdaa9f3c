package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// ShopRepository implements the shop repository for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	query := `
		SELECT item_id, item_name, item_type, cost
		FROM shop_items
		ORDER BY cost, item_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items: %w", err)
	}
	defer rows.Close()

	var items []domain.ShopItem
	for rows.Next() {
		var item domain.ShopItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ShopRepository) GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	query := `
		SELECT item_id, item_name, item_type, cost
		FROM shop_items WHERE item_id = $1
	`
	var item domain.ShopItem
	err := r.db.QueryRow(ctx, query, itemID).Scan(&item.ID, &item.Name, &item.Type, &item.Cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get shop item: %w", err)
	}
	return &item, nil
}

func (r *ShopRepository) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedItem, error) {
	query := `
		SELECT u.item_id, u.user_id, s.item_name, s.item_type, u.unlocked_at
		FROM unlocked_items u
		JOIN shop_items s ON s.item_id = u.item_id
		WHERE u.user_id = $1
		ORDER BY u.unlocked_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked items: %w", err)
	}
	defer rows.Close()

	var unlocked []domain.UnlockedItem
	for rows.Next() {
		var u domain.UnlockedItem
		if err := rows.Scan(&u.ItemID, &u.UserID, &u.Name, &u.Type, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked item: %w", err)
		}
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

func (r *ShopRepository) IsUnlocked(ctx context.Context, userID, itemID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM unlocked_items WHERE user_id = $1 AND item_id = $2
		)
	`
	var owned bool
	if err := r.db.QueryRow(ctx, query, userID, itemID).Scan(&owned); err != nil {
		return false, fmt.Errorf("failed to check item ownership: %w", err)
	}
	return owned, nil
}

// PurchaseItem deducts the cost and records the unlock in one transaction.
// The coin balance is read under a row lock so concurrent purchases cannot
// spend the same coins twice.
func (r *ShopRepository) PurchaseItem(ctx context.Context, userID string, item domain.ShopItem) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var coins int
	err = tx.QueryRow(ctx, `SELECT coins FROM user_stats WHERE user_id = $1 FOR UPDATE`, userID).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to lock user stats: %w", err)
	}

	var owned bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM unlocked_items WHERE user_id = $1 AND item_id = $2
		)
	`, userID, item.ID).Scan(&owned)
	if err != nil {
		return 0, fmt.Errorf("failed to check item ownership: %w", err)
	}
	if owned {
		return 0, domain.ErrAlreadyOwned
	}
	if coins < item.Cost {
		return 0, domain.ErrInsufficientFunds
	}

	remaining := coins - item.Cost
	_, err = tx.Exec(ctx, `
		UPDATE user_stats SET coins = $1, updated_at = NOW() WHERE user_id = $2
	`, remaining, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deduct coins: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO unlocked_items (user_id, item_id, unlocked_at)
		VALUES ($1, $2, NOW())
	`, userID, item.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to record unlock: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return remaining, nil
}
