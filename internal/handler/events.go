package handler

import (
	"net/http"
	"strconv"

	"github.com/JackRiiley/life-rpg-app/internal/eventlog"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// HandleEventHistory handles GET requests for a user's recent event
// history. An optional limit parameter bounds the page size.
func HandleEventHistory(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
				return
			}
			limit = parsed
		}

		events, err := svc.EventsForUser(r.Context(), userID, limit)
		if err != nil {
			log.Error("Failed to fetch event history", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, events)
	}
}
