package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"

	"github.com/google/uuid"
)

// JSONTaskRepository keeps the whole board in one JSON file and rewrites it on
// every mutation.
type JSONTaskRepository struct {
	path string
	mu   sync.RWMutex
}

func NewJSONTaskRepository(path string) (*JSONTaskRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logging.Logger.Infof("Event ID: JSON_STORE_READY, Description: Using JSON file storage at %s", path)
	return &JSONTaskRepository{path: path}, nil
}

func (r *JSONTaskRepository) Name() string {
	return "json"
}

// readTasks treats a missing or undecodable file as an empty board. Any other
// read error is returned so a later write cannot replace data it never saw.
func (r *JSONTaskRepository) readTasks() ([]*models.Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	var decoded []*models.Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		logging.Logger.Warnf("Event ID: JSON_STORE_DECODE_FAILED, Description: Failed to decode %s: %v", r.path, err)
		return []*models.Task{}, nil
	}

	tasks := make([]*models.Task, 0, len(decoded))
	for _, task := range decoded {
		if task != nil {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *JSONTaskRepository) writeTasks(tasks []*models.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

func indexOf(tasks []*models.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (r *JSONTaskRepository) FindAll(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all, err := r.readTasks()
	if err != nil {
		return nil, err
	}
	tasks := FilterTasks(all, query)
	SortTasks(tasks, query)
	return tasks, nil
}

func (r *JSONTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks, err := r.readTasks()
	if err != nil {
		return nil, err
	}
	i := indexOf(tasks, id)
	if i == -1 {
		return nil, ErrTaskNotFound
	}
	return tasks[i], nil
}

func (r *JSONTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneTask(task)
	created.ID = uuid.New().String()

	tasks, err := r.readTasks()
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, created)
	if err := r.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (r *JSONTaskRepository) Update(ctx context.Context, id string, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.readTasks()
	if err != nil {
		return nil, err
	}
	i := indexOf(tasks, id)
	if i == -1 {
		return nil, ErrTaskNotFound
	}

	updated := cloneTask(task)
	updated.ID = id
	updated.CreatedAt = tasks[i].CreatedAt
	tasks[i] = updated

	if err := r.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (r *JSONTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.readTasks()
	if err != nil {
		return err
	}
	i := indexOf(tasks, id)
	if i == -1 {
		return ErrTaskNotFound
	}

	tasks = append(tasks[:i], tasks[i+1:]...)
	if err := r.writeTasks(tasks); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *JSONTaskRepository) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(r.path))
	return err
}

func (r *JSONTaskRepository) Close(ctx context.Context) error {
	return nil
}
