package repository

import (
	"context"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// ShopRepository defines the interface for shop data operations.
// PurchaseItem runs its own transaction: it verifies the balance and
// ownership under lock, deducts the cost, and records the unlock. It
// returns the remaining coin balance.
type ShopRepository interface {
	ListItems(ctx context.Context) ([]domain.ShopItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error)
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedItem, error)
	IsUnlocked(ctx context.Context, userID, itemID string) (bool, error)
	PurchaseItem(ctx context.Context, userID string, item domain.ShopItem) (int, error)
}
