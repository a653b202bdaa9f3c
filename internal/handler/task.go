package handler

import (
	"net/http"

	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/task"
)

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Title  string `json:"title" validate:"required,max=200,excludesall=\x00"`
	Type   string `json:"type" validate:"required,tasktype"`
	XP     int    `json:"xp" validate:"gte=0"`
}

// HandleCreateTask handles POST requests to create a daily or todo task
func HandleCreateTask(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
			return
		}

		created, err := svc.CreateTask(r.Context(), req.UserID, req.Title, req.Type, req.XP)
		if err != nil {
			log.Error("Failed to create task", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		log.Info("Task created", "user_id", req.UserID, "task_id", created.ID, "type", created.Type)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleListTasks handles GET requests for a user's task list
func HandleListTasks(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		tasks, err := svc.ListTasks(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list tasks", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, tasks)
	}
}

// TaskActionRequest identifies a task for complete, uncomplete and delete
type TaskActionRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	TaskID string `json:"task_id" validate:"required,uuid"`
}

// HandleCompleteTask handles POST requests to complete a task and grant
// its rewards
func HandleCompleteTask(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TaskActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete task"); err != nil {
			return
		}

		result, err := svc.CompleteTask(r.Context(), req.UserID, req.TaskID)
		if err != nil {
			log.Error("Failed to complete task", "error", err, "user_id", req.UserID, "task_id", req.TaskID)
			respondServiceError(w, err)
			return
		}

		log.Info("Task completed", "user_id", req.UserID, "task_id", req.TaskID,
			"xp_granted", result.XPGranted, "leveled_up", result.LeveledUp)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleUncompleteTask handles POST requests to reopen a completed task.
// Rewards already granted are kept.
func HandleUncompleteTask(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TaskActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Uncomplete task"); err != nil {
			return
		}

		if err := svc.UncompleteTask(r.Context(), req.UserID, req.TaskID); err != nil {
			log.Error("Failed to uncomplete task", "error", err, "user_id", req.UserID, "task_id", req.TaskID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskReopenedSuccess})
	}
}

// HandleDeleteTask handles POST requests to delete a task
func HandleDeleteTask(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TaskActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Delete task"); err != nil {
			return
		}

		if err := svc.DeleteTask(r.Context(), req.UserID, req.TaskID); err != nil {
			log.Error("Failed to delete task", "error", err, "user_id", req.UserID, "task_id", req.TaskID)
			respondServiceError(w, err)
			return
		}

		log.Info("Task deleted", "user_id", req.UserID, "task_id", req.TaskID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskDeletedSuccess})
	}
}
