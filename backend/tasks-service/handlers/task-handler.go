package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
	"kanban-board/backend/tasks-service/repositories"
	"kanban-board/backend/tasks-service/services"

	"github.com/gorilla/mux"
)

const (
	msgTaskNotFound   = "Task not found"
	msgInvalidBody    = "Invalid request body"
	msgFetchTasks     = "Failed to fetch tasks"
	msgFetchTask      = "Failed to fetch task"
	msgCreateTask     = "Failed to create task"
	msgUpdateTask     = "Failed to update task"
	msgDeleteTask     = "Failed to delete task"
	maxRequestBodyLen = 1 << 20
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// writeServiceError maps service errors to status codes. Store failures are
// logged and reported with the generic fallback message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, repositories.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, msgTaskNotFound)
	default:
		logging.Logger.Errorf("Event ID: STORE_ERROR, Description: %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyLen)).Decode(v); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_REQUEST_BODY, Description: %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	query := models.ParseTaskQuery(r.URL.Query())

	tasks, err := h.service.GetAll(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, msgFetchTasks)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	task, err := h.service.GetByID(r.Context(), taskID)
	if err != nil {
		writeServiceError(w, r, err, msgFetchTask)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, msgCreateTask)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var req models.UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Update(r.Context(), taskID, req)
	if err != nil {
		writeServiceError(w, r, err, msgUpdateTask)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var req models.PatchTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Patch(r.Context(), taskID, req)
	if err != nil {
		writeServiceError(w, r, err, msgUpdateTask)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), taskID); err != nil {
		writeServiceError(w, r, err, msgDeleteTask)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Health(r.Context()))
}
