package shop

import (
	"context"
	"fmt"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// Service owns the cosmetic shop: the catalog and coin purchases.
type Service interface {
	// ListItems returns the catalog with the viewer's ownership flags.
	ListItems(ctx context.Context, userID string) ([]domain.OwnedShopItem, error)
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedItem, error)
	// Purchase buys an item with coins. The balance check and deduction are
	// atomic, so concurrent purchases cannot overspend.
	Purchase(ctx context.Context, userID, itemID string) (*domain.PurchaseResult, error)
}

type service struct {
	repo repository.ShopRepository
	bus  event.Bus
}

// NewService creates a new shop service
func NewService(repo repository.ShopRepository, bus event.Bus) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) ListItems(ctx context.Context, userID string) ([]domain.OwnedShopItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shop items: %w", err)
	}
	unlocked, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked items: %w", err)
	}

	owned := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		owned[u.ItemID] = true
	}

	out := make([]domain.OwnedShopItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OwnedShopItem{ShopItem: item, IsOwned: owned[item.ID]})
	}
	return out, nil
}

func (s *service) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedItem, error) {
	return s.repo.ListUnlocked(ctx, userID)
}

func (s *service) Purchase(ctx context.Context, userID, itemID string) (*domain.PurchaseResult, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.repo.PurchaseItem(ctx, userID, *item)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("item purchased",
		"user_id", userID, "item_id", item.ID, "cost", item.Cost)

	if err := s.bus.Publish(ctx, event.NewItemPurchasedEvent(userID, *item, remaining)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish item purchased event", "item_id", item.ID, "error", err)
	}

	return &domain.PurchaseResult{Item: *item, CoinsRemaining: remaining}, nil
}
