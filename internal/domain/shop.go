package domain

import "time"

// Shop item types.
const (
	ShopItemTypeTheme = "theme"
	ShopItemTypeBadge = "badge"
)

// DefaultTheme is always available and never needs a purchase.
const DefaultTheme = "default"

// ShopItem is a catalog entry purchasable with coins.
type ShopItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Cost int    `json:"cost"`
}

// UnlockedItem records one purchased catalog entry for one user.
type UnlockedItem struct {
	ItemID     string    `json:"item_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// OwnedShopItem merges a catalog entry with the viewer's ownership flag.
type OwnedShopItem struct {
	ShopItem
	IsOwned bool `json:"is_owned"`
}

// PurchaseResult reports a committed purchase.
type PurchaseResult struct {
	Item           ShopItem `json:"item"`
	CoinsRemaining int      `json:"coins_remaining"`
}
