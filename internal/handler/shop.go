package handler

import (
	"net/http"

	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/shop"
)

// HandleListShopItems handles GET requests for the shop catalog with the
// viewer's ownership flags
func HandleListShopItems(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list shop items", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

// HandleListUnlockedItems handles GET requests for the user's purchases
func HandleListUnlockedItems(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		unlocked, err := svc.ListUnlocked(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list unlocked items", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, unlocked)
	}
}

// PurchaseRequest identifies a shop item to buy
type PurchaseRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	ItemID string `json:"item_id" validate:"required,max=64"`
}

// HandlePurchase handles POST requests to buy a shop item with coins
func HandlePurchase(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase item"); err != nil {
			return
		}

		result, err := svc.Purchase(r.Context(), req.UserID, req.ItemID)
		if err != nil {
			log.Error("Failed to purchase item", "error", err, "user_id", req.UserID, "item_id", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item purchased", "user_id", req.UserID, "item_id", req.ItemID,
			"coins_remaining", result.CoinsRemaining)
		respondJSON(w, http.StatusOK, result)
	}
}
