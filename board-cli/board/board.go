package board

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
)

// TaskAPI is the part of the tasks API the board needs.
type TaskAPI interface {
	List(ctx context.Context, query models.TaskQuery) ([]models.Task, error)
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	Patch(ctx context.Context, id string, req models.PatchTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

type Counts struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// Board keeps a local copy of the tasks. Local state changes only after the API
// has accepted a mutation.
type Board struct {
	api   TaskAPI
	mu    sync.RWMutex
	tasks []models.Task
}

func New(api TaskAPI) *Board {
	return &Board{api: api}
}

// Load replaces the local state with every task, archived ones included.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.List(ctx, models.TaskQuery{Archived: models.ArchivedAll})
	if err != nil {
		logging.Logger.Errorf("Event ID: BOARD_LOAD_FAILED, Description: Failed to load tasks: %v", err)
		return fmt.Errorf("load tasks: %w", err)
	}
	b.SetTasks(tasks)
	return nil
}

func (b *Board) AddTask(ctx context.Context, title, description string, priority models.TaskPriority) (models.Task, error) {
	if priority == "" {
		priority = models.PriorityMedium
	}
	created, err := b.api.Create(ctx, models.CreateTaskRequest{
		Title:       title,
		Description: description,
		Priority:    string(priority),
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: BOARD_ADD_FAILED, Description: Failed to add task: %v", err)
		return models.Task{}, err
	}

	b.mu.Lock()
	b.tasks = append(b.tasks, *created)
	b.mu.Unlock()
	return *created, nil
}

// UpdateTask sends a partial update and swaps in the task the API returns.
func (b *Board) UpdateTask(ctx context.Context, id string, patch models.PatchTaskRequest) (models.Task, error) {
	updated, err := b.api.Patch(ctx, id, patch)
	if err != nil {
		logging.Logger.Errorf("Event ID: BOARD_UPDATE_FAILED, Description: Failed to update task %s: %v", id, err)
		return models.Task{}, err
	}
	b.replace(*updated)
	return *updated, nil
}

func (b *Board) DeleteTask(ctx context.Context, id string) error {
	if err := b.api.Delete(ctx, id); err != nil {
		logging.Logger.Errorf("Event ID: BOARD_DELETE_FAILED, Description: Failed to delete task %s: %v", id, err)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.tasks[:0]
	for _, task := range b.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	b.tasks = kept
	return nil
}

func (b *Board) MoveTask(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	value := string(status)
	return b.UpdateTask(ctx, id, models.PatchTaskRequest{Status: &value})
}

func (b *Board) ArchiveTask(ctx context.Context, id string) (models.Task, error) {
	archived := true
	return b.UpdateTask(ctx, id, models.PatchTaskRequest{Archived: &archived})
}

func (b *Board) UnarchiveTask(ctx context.Context, id string) (models.Task, error) {
	archived := false
	return b.UpdateTask(ctx, id, models.PatchTaskRequest{Archived: &archived})
}

func (b *Board) TaskByID(id string) (models.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, task := range b.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return models.Task{}, false
}

func (b *Board) Tasks() []models.Task {
	return b.filter(func(models.Task) bool { return true })
}

func (b *Board) ActiveTasks() []models.Task {
	return b.filter(func(t models.Task) bool { return !t.Archived })
}

func (b *Board) ArchivedTasks() []models.Task {
	return b.filter(func(t models.Task) bool { return t.Archived })
}

// Counts tallies the active tasks per column.
func (b *Board) Counts() Counts {
	var counts Counts
	for _, task := range b.ActiveTasks() {
		counts.Total++
		switch task.Status {
		case models.StatusTodo:
			counts.Todo++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusDone:
			counts.Done++
		}
	}
	return counts
}

// TasksForStatus returns the active tasks of one column.
func (b *Board) TasksForStatus(status models.TaskStatus) []models.Task {
	return b.filter(func(t models.Task) bool { return !t.Archived && t.Status == status })
}

func (b *Board) FilterByPriority(priority models.TaskPriority) []models.Task {
	return b.filter(func(t models.Task) bool { return t.Priority == priority })
}

// SearchTasks matches titles case-insensitively. A blank query matches everything.
func (b *Board) SearchTasks(query string) []models.Task {
	needle := strings.ToLower(strings.TrimSpace(query))
	return b.filter(func(t models.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), needle)
	})
}

func (b *Board) Clear() {
	b.SetTasks(nil)
}

func (b *Board) SetTasks(tasks []models.Task) {
	copied := make([]models.Task, len(tasks))
	copy(copied, tasks)

	b.mu.Lock()
	b.tasks = copied
	b.mu.Unlock()
}

func (b *Board) replace(updated models.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == updated.ID {
			b.tasks[i] = updated
			return
		}
	}
	b.tasks = append(b.tasks, updated)
}

func (b *Board) filter(keep func(models.Task) bool) []models.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := []models.Task{}
	for _, task := range b.tasks {
		if keep(task) {
			result = append(result, task)
		}
	}
	return result
}
