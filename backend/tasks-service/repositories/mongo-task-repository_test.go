package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"kanban-board/backend/tasks-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	filter := buildFilter(models.TaskQuery{Archived: models.ArchivedFalse})
	if v, ok := filter["archived"]; !ok || v != false {
		t.Errorf("default filter archived = %v, want false", v)
	}

	filter = buildFilter(models.TaskQuery{
		Archived: models.ArchivedAll,
		Status:   models.StatusInProgress,
		Priority: models.PriorityLow,
		Search:   "a.b",
	})
	if _, ok := filter["archived"]; ok {
		t.Error("archived=all should not filter on archived")
	}
	if filter["status"] != models.StatusInProgress || filter["priority"] != models.PriorityLow {
		t.Errorf("unexpected filter: %v", filter)
	}
	regex, ok := filter["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("title filter = %T, want primitive.Regex", filter["title"])
	}
	if regex.Pattern != `a\.b` || regex.Options != "i" {
		t.Errorf("title regex = %+v", regex)
	}
}

func TestFindOptions(t *testing.T) {
	if opts := findOptions(models.TaskQuery{}); opts.Sort != nil {
		t.Errorf("no orderBy should not sort, got %v", opts.Sort)
	}
	if opts := findOptions(models.TaskQuery{OrderBy: models.OrderByPriority}); opts.Sort != nil {
		t.Errorf("priority should be sorted in memory, got %v", opts.Sort)
	}

	opts := findOptions(models.TaskQuery{OrderBy: models.OrderByTitle, Order: models.OrderDesc})
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) == 0 {
		t.Fatalf("Sort = %v, want bson.D", opts.Sort)
	}
	if sort[0].Key != "title" || sort[0].Value != -1 {
		t.Errorf("first sort key = %v, want title desc", sort[0])
	}
}

func TestMongoInvalidIDIsNotFound(t *testing.T) {
	repo := &MongoTaskRepository{}
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "not-an-object-id"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
	}
	if _, err := repo.Update(ctx, "xyz", &models.Task{}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete(ctx, "xyz"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
	}
}

// TestMongoTaskRepositoryIntegration runs against a live server when MONGO_TEST_URI is set.
func TestMongoTaskRepositoryIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Fatalf("ConnectMongo() error = %v", err)
	}
	repo := NewMongoTaskRepository(client, "kanban_test", "tasks_"+primitive.NewObjectID().Hex())
	defer func() {
		_ = repo.tasksCollection.Drop(context.Background())
		_ = repo.Close(context.Background())
	}()

	now := time.Now().UTC().Truncate(time.Millisecond)
	low, err := repo.Create(ctx, newTask("low task", models.PriorityLow, now))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	high, err := repo.Create(ctx, newTask("High Task", models.PriorityHigh, now.Add(time.Second)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := repo.FindAll(ctx, models.TaskQuery{Archived: models.ArchivedFalse, OrderBy: models.OrderByPriority, Order: models.OrderDesc})
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != high.ID {
		t.Errorf("priority desc order wrong: %+v", tasks)
	}

	tasks, err = repo.FindAll(ctx, models.TaskQuery{Archived: models.ArchivedFalse, Search: "TASK"})
	if err != nil || len(tasks) != 2 {
		t.Errorf("search returned %d tasks, err %v", len(tasks), err)
	}

	archived := *low
	archived.Archived = true
	archived.UpdatedAt = now.Add(time.Minute)
	if _, err := repo.Update(ctx, low.ID, &archived); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	tasks, _ = repo.FindAll(ctx, models.TaskQuery{Archived: models.ArchivedFalse})
	if len(tasks) != 1 {
		t.Errorf("archived task should be hidden by default, got %d tasks", len(tasks))
	}

	if err := repo.Delete(ctx, high.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, high.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Delete() error = %v, want ErrTaskNotFound", err)
	}
}
