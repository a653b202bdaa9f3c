package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// FakeShopRepository is a stateful in-memory ShopRepository for tests.
// PurchaseItem debits the coin balance held by Stats, which must be set
// before any purchase.
type FakeShopRepository struct {
	mu       sync.Mutex
	items    map[string]domain.ShopItem
	order    []string
	unlocked map[string]map[string]domain.UnlockedItem

	Stats *FakeStatsRepository
}

// NewFakeShopRepository creates an empty fake
func NewFakeShopRepository() *FakeShopRepository {
	return &FakeShopRepository{
		items:    make(map[string]domain.ShopItem),
		unlocked: make(map[string]map[string]domain.UnlockedItem),
	}
}

// SeedItems adds catalog entries.
func (f *FakeShopRepository) SeedItems(items ...domain.ShopItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		if _, ok := f.items[item.ID]; !ok {
			f.order = append(f.order, item.ID)
		}
		f.items[item.ID] = item
	}
}

func (f *FakeShopRepository) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ShopItem, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *FakeShopRepository) GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return &item, nil
}

func (f *FakeShopRepository) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.UnlockedItem
	for _, u := range f.unlocked[userID] {
		out = append(out, u)
	}
	return out, nil
}

func (f *FakeShopRepository) IsUnlocked(ctx context.Context, userID, itemID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.unlocked[userID][itemID]
	return ok, nil
}

func (f *FakeShopRepository) PurchaseItem(ctx context.Context, userID string, item domain.ShopItem) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.unlocked[userID][item.ID]; ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrAlreadyOwned, item.ID)
	}

	f.Stats.mu.Lock()
	defer f.Stats.mu.Unlock()
	stats, ok := f.Stats.stats[userID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if stats.Coins < item.Cost {
		return 0, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, stats.Coins, item.Cost)
	}
	stats.Coins -= item.Cost

	if f.unlocked[userID] == nil {
		f.unlocked[userID] = make(map[string]domain.UnlockedItem)
	}
	f.unlocked[userID][item.ID] = domain.UnlockedItem{
		ItemID:     item.ID,
		UserID:     userID,
		Name:       item.Name,
		Type:       item.Type,
		UnlockedAt: time.Now(),
	}

	return stats.Coins, nil
}
