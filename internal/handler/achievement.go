package handler

import (
	"net/http"

	"github.com/JackRiiley/life-rpg-app/internal/achievement"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// HandleListAchievements handles GET requests for the achievement catalog
func HandleListAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		achievements, err := svc.ListAchievements(r.Context())
		if err != nil {
			log.Error("Failed to list achievements", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, achievements)
	}
}

// HandleListUnlockedAchievements handles GET requests for a user's unlocked
// achievements
func HandleListUnlockedAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		unlocked, err := svc.ListUnlocked(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list unlocked achievements", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, unlocked)
	}
}
