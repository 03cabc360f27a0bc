package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
	"kanban-board/backend/tasks-service/repositories"
)

// ErrValidation marks request errors; the wrapped message is safe to return to clients.
var ErrValidation = errors.New("validation failed")

const (
	msgTitleRequired     = "Title is required"
	msgTitleEmpty        = "Title cannot be empty"
	msgPutFieldsRequired = "All fields (title, description, status, priority) are required for PUT"
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

type TaskService struct {
	repo repositories.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repositories.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// StorageName labels the backing store in health reports.
func (s *TaskService) StorageName() string {
	return s.repo.Name()
}

func (s *TaskService) GetAll(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	tasks, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new card in the todo column.
func (s *TaskService) Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newValidationError(msgTitleRequired)
	}

	now := s.now()
	task := &models.Task{
		Title:       title,
		Description: req.Description,
		Status:      models.StatusTodo,
		Priority:    models.PriorityOrDefault(req.Priority),
		Archived:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created with priority %s", created.ID, created.Priority)
	return created, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// Update replaces every mutable field of a task.
func (s *TaskService) Update(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	if blank(req.Title) || blank(req.Description) || blank(req.Status) || blank(req.Priority) {
		return nil, newValidationError(msgPutFieldsRequired)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(*req.Title)
	existing.Description = *req.Description
	existing.Status = models.StatusOrDefault(*req.Status)
	existing.Priority = models.PriorityOrDefault(*req.Priority)
	existing.Archived = req.Archived != nil && *req.Archived
	existing.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: TASK_REPLACED, Description: Task %s replaced", id)
	return updated, nil
}

// Patch applies only the supplied fields.
func (s *TaskService) Patch(ctx context.Context, id string, req models.PatchTaskRequest) (*models.Task, error) {
	if req.Title != nil && blank(req.Title) {
		return nil, newValidationError(msgTitleEmpty)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Status != nil {
		existing.Status = models.StatusOrDefault(*req.Status)
	}
	if req.Priority != nil {
		existing.Priority = models.PriorityOrDefault(*req.Priority)
	}
	if req.Archived != nil {
		existing.Archived = *req.Archived
	}
	existing.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: TASK_PATCHED, Description: Task %s patched (status %s, archived %t)", id, updated.Status, updated.Archived)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted", id)
	return nil
}

// Health reports "ok" when the store answers a ping and "degraded" otherwise.
func (s *TaskService) Health(ctx context.Context) models.HealthResponse {
	status := "ok"
	if err := s.repo.Ping(ctx); err != nil {
		logging.Logger.Warnf("Event ID: HEALTH_DEGRADED, Description: Storage %s ping failed: %v", s.StorageName(), err)
		status = "degraded"
	}
	return models.HealthResponse{
		Status:    status,
		Storage:   s.StorageName(),
		Timestamp: s.now().Format(time.RFC3339Nano),
	}
}
