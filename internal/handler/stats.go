package handler

import (
	"net/http"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
)

// RegisterStatsRequest represents a request to register a user's stats document
type RegisterStatsRequest struct {
	UserID string `json:"user_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
	Email  string `json:"email" validate:"omitempty,email,max=255"`
}

// HandleRegisterStats handles POST requests to create the level-1 stats
// document. Registering an existing user returns the current document.
func HandleRegisterStats(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterStatsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register stats"); err != nil {
			return
		}

		stats, err := svc.EnsureStats(r.Context(), req.UserID, req.Email)
		if err != nil {
			log.Error("Failed to register stats", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		log.Info("Stats registered", "user_id", req.UserID, "level", stats.Level)
		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleGetStats handles GET requests for a user's stats document
func HandleGetStats(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		stats, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get stats", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// SpendAttributeRequest represents a request to spend one attribute point
type SpendAttributeRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	Attribute string `json:"attribute" validate:"required,attribute"`
}

// HandleSpendAttribute handles POST requests to convert an unspent point
// into an attribute level
func HandleSpendAttribute(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SpendAttributeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Spend attribute point"); err != nil {
			return
		}

		stats, err := svc.SpendAttributePoint(r.Context(), req.UserID, domain.Attribute(req.Attribute))
		if err != nil {
			log.Error("Failed to spend attribute point", "error", err, "user_id", req.UserID, "attribute", req.Attribute)
			respondServiceError(w, err)
			return
		}

		log.Info("Attribute point spent", "user_id", req.UserID, "attribute", req.Attribute)
		respondJSON(w, http.StatusOK, stats)
	}
}

// SelectTitleRequest represents a request to change the displayed title
type SelectTitleRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Title  string `json:"title" validate:"max=100"`
}

// HandleSelectTitle handles POST requests to set the displayed title.
// An empty title clears the selection.
func HandleSelectTitle(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SelectTitleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Select title"); err != nil {
			return
		}

		if err := svc.SelectTitle(r.Context(), req.UserID, req.Title); err != nil {
			log.Error("Failed to select title", "error", err, "user_id", req.UserID, "title", req.Title)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTitleSelectedSuccess})
	}
}

// SelectThemeRequest represents a request to change the active theme
type SelectThemeRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Theme  string `json:"theme" validate:"required,max=100"`
}

// HandleSelectTheme handles POST requests to set the active UI theme
func HandleSelectTheme(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SelectThemeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Select theme"); err != nil {
			return
		}

		if err := svc.SelectTheme(r.Context(), req.UserID, req.Theme); err != nil {
			log.Error("Failed to select theme", "error", err, "user_id", req.UserID, "theme", req.Theme)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgThemeSelectedSuccess})
	}
}

// StreakResponse reports the user's streak after a staleness check
type StreakResponse struct {
	CurrentStreak int  `json:"current_streak"`
	Broken        bool `json:"broken"`
}

// HandleGetStreak handles GET requests for the current streak. The read
// doubles as the staleness check, so a lapsed streak shows as zero.
func HandleGetStreak(svc streak.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		current, broken, err := svc.CheckStreak(r.Context(), userID)
		if err != nil {
			log.Error("Failed to check streak", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, StreakResponse{CurrentStreak: current, Broken: broken})
	}
}
