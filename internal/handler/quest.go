package handler

import (
	"net/http"

	"github.com/JackRiiley/life-rpg-app/internal/dailyquest"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// HandleListQuests handles GET requests for the user's active daily quests.
// The read performs the day rollover first, so a stale quest set is never
// served.
func HandleListQuests(svc dailyquest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		if _, err := svc.EnsureDailyState(r.Context(), userID); err != nil {
			log.Error("Failed to roll over daily state", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		quests, err := svc.ListActiveQuests(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list active quests", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, quests)
	}
}

// DailyResetRequest identifies the user whose day should roll over
type DailyResetRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// HandleDailyReset handles POST requests to perform the day rollover.
// It is idempotent per calendar day.
func HandleDailyReset(svc dailyquest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DailyResetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Daily reset"); err != nil {
			return
		}

		result, err := svc.EnsureDailyState(r.Context(), req.UserID)
		if err != nil {
			log.Error("Failed to reset daily state", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// CompleteQuestRequest identifies an active quest to complete
type CompleteQuestRequest struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	QuestID string `json:"quest_id" validate:"required,uuid"`
}

// HandleCompleteQuest handles POST requests to complete an active quest
// and grant its rewards
func HandleCompleteQuest(svc dailyquest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CompleteQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
			return
		}

		result, err := svc.CompleteQuest(r.Context(), req.UserID, req.QuestID)
		if err != nil {
			log.Error("Failed to complete quest", "error", err, "user_id", req.UserID, "quest_id", req.QuestID)
			respondServiceError(w, err)
			return
		}

		log.Info("Quest completed", "user_id", req.UserID, "quest_id", req.QuestID,
			"xp_granted", result.XPGranted)
		respondJSON(w, http.StatusOK, result)
	}
}
