package handler

import (
	"net/http"
	"strings"

	"github.com/JackRiiley/life-rpg-app/internal/boss"
	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// CreateBossRequest represents a request to create a boss project
type CreateBossRequest struct {
	UserID     string `json:"user_id" validate:"required,max=128"`
	Name       string `json:"name" validate:"required,max=200,excludesall=\x00"`
	Difficulty string `json:"difficulty" validate:"required,difficulty"`
}

// HandleCreateBoss handles POST requests to create a boss. The HP pool is
// fixed at creation from the owner's level and the difficulty.
func HandleCreateBoss(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateBossRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create boss"); err != nil {
			return
		}

		difficulty := domain.Difficulty(strings.ToLower(req.Difficulty))
		created, err := svc.CreateBoss(r.Context(), req.UserID, req.Name, difficulty)
		if err != nil {
			log.Error("Failed to create boss", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		log.Info("Boss created", "user_id", req.UserID, "boss_id", created.ID,
			"difficulty", created.Difficulty, "total_hp", created.TotalHP)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleListBosses handles GET requests for a user's bosses
func HandleListBosses(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		bosses, err := svc.ListBosses(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list bosses", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, bosses)
	}
}

// HandleGetBoss handles GET requests for a single boss
func HandleGetBoss(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		bossID, ok := GetQueryParam(r, w, "boss_id")
		if !ok {
			return
		}

		b, err := svc.GetBoss(r.Context(), userID, bossID)
		if err != nil {
			log.Error("Failed to get boss", "error", err, "user_id", userID, "boss_id", bossID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, b)
	}
}

// CreateAttackRequest represents a request to add an attack to a boss
type CreateAttackRequest struct {
	UserID     string `json:"user_id" validate:"required,max=128"`
	BossID     string `json:"boss_id" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,max=200,excludesall=\x00"`
	BaseDamage int    `json:"base_damage" validate:"gte=0"`
	Attribute  string `json:"attribute" validate:"omitempty,attribute"`
	XP         int    `json:"xp" validate:"gte=0"`
	Coins      int    `json:"coins" validate:"gte=0"`
}

// HandleCreateAttack handles POST requests to add an attack. Zero XP or
// coins are filled in from the damage-derived suggestion.
func HandleCreateAttack(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateAttackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create attack"); err != nil {
			return
		}

		created, err := svc.CreateAttack(r.Context(), req.UserID, boss.NewAttack{
			BossID:     req.BossID,
			Title:      req.Title,
			BaseDamage: req.BaseDamage,
			Attribute:  domain.Attribute(strings.ToLower(req.Attribute)),
			XP:         req.XP,
			Coins:      req.Coins,
		})
		if err != nil {
			log.Error("Failed to create attack", "error", err, "user_id", req.UserID, "boss_id", req.BossID)
			respondServiceError(w, err)
			return
		}

		log.Info("Attack created", "user_id", req.UserID, "boss_id", req.BossID, "attack_id", created.ID)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleListAttacks handles GET requests for a boss's attacks
func HandleListAttacks(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		bossID, ok := GetQueryParam(r, w, "boss_id")
		if !ok {
			return
		}

		attacks, err := svc.ListAttacks(r.Context(), userID, bossID)
		if err != nil {
			log.Error("Failed to list attacks", "error", err, "user_id", userID, "boss_id", bossID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, attacks)
	}
}

// ExecuteAttackRequest identifies an attack to execute
type ExecuteAttackRequest struct {
	UserID   string `json:"user_id" validate:"required,max=128"`
	AttackID string `json:"attack_id" validate:"required,uuid"`
}

// HandleExecuteAttack handles POST requests to execute an attack, applying
// its damage and granting its rewards
func HandleExecuteAttack(svc boss.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ExecuteAttackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Execute attack"); err != nil {
			return
		}

		result, err := svc.ExecuteAttack(r.Context(), req.UserID, req.AttackID)
		if err != nil {
			log.Error("Failed to execute attack", "error", err, "user_id", req.UserID, "attack_id", req.AttackID)
			respondServiceError(w, err)
			return
		}

		log.Info("Attack executed", "user_id", req.UserID, "attack_id", req.AttackID,
			"damage", result.TotalDamage, "boss_defeated", result.BossDefeated)
		respondJSON(w, http.StatusOK, result)
	}
}
