package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"

	"kanban-board/backend/tasks-service/models"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository is the storage port shared by both HTTP implementations.
// FindByID, Update and Delete return ErrTaskNotFound for unknown or malformed ids.
type TaskRepository interface {
	Name() string
	FindAll(ctx context.Context, query models.TaskQuery) ([]*models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, id string, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// FilterTasks applies the archived, status, priority and title search filters of query.
func FilterTasks(tasks []*models.Task, query models.TaskQuery) []*models.Task {
	archived, filterArchived := query.ArchivedFilter()
	search := strings.ToLower(query.Search)

	filtered := make([]*models.Task, 0, len(tasks))
	for _, task := range tasks {
		if filterArchived && task.Archived != archived {
			continue
		}
		if query.Status != "" && task.Status != query.Status {
			continue
		}
		if query.Priority != "" && task.Priority != query.Priority {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(task.Title), search) {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered
}

// SortTasks orders tasks in place by query.OrderBy. Ties keep their original order.
func SortTasks(tasks []*models.Task, query models.TaskQuery) {
	less := lessFunc(query.OrderBy)
	if less == nil {
		return
	}
	desc := query.Descending()
	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func lessFunc(orderBy string) func(a, b *models.Task) bool {
	switch orderBy {
	case models.OrderByPriority:
		return func(a, b *models.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case models.OrderByCreatedAt:
		return func(a, b *models.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case models.OrderByUpdatedAt:
		return func(a, b *models.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case models.OrderByTitle:
		return func(a, b *models.Task) bool { return a.Title < b.Title }
	}
	return nil
}

func cloneTask(task *models.Task) *models.Task {
	c := *task
	return &c
}
