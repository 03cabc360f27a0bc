package repositories

import (
	"context"
	"fmt"
	"strings"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreTaskRepository stores one document per task. Equality filters run in
// Firestore; title search and ordering run in memory.
type FirestoreTaskRepository struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// ConnectFirestore opens a client for projectID. credentialsFile may be empty to
// use application default credentials.
func ConnectFirestore(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}
	logging.Logger.Infof("Event ID: FIRESTORE_CONNECTED, Description: Firestore client ready for project %s", projectID)
	return client, nil
}

func NewFirestoreTaskRepository(client *firestore.Client, collection string) *FirestoreTaskRepository {
	return &FirestoreTaskRepository{
		client:     client,
		collection: client.Collection(collection),
	}
}

func (r *FirestoreTaskRepository) Name() string {
	return "firestore"
}

func (r *FirestoreTaskRepository) FindAll(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	q := r.collection.Query
	if archived, ok := query.ArchivedFilter(); ok {
		q = q.Where("archived", "==", archived)
	}
	if query.Status != "" {
		q = q.Where("status", "==", string(query.Status))
	}
	if query.Priority != "" {
		q = q.Where("priority", "==", string(query.Priority))
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	tasks := []*models.Task{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
		}
		task, err := decodeSnapshot(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	tasks = FilterTasks(tasks, models.TaskQuery{Archived: models.ArchivedAll, Search: query.Search})
	SortTasks(tasks, query)
	return tasks, nil
}

func decodeSnapshot(doc *firestore.DocumentSnapshot) (*models.Task, error) {
	var task models.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", doc.Ref.ID, err)
	}
	task.ID = doc.Ref.ID
	return &task, nil
}

// doc returns nil for ids that cannot name a document in the collection.
func (r *FirestoreTaskRepository) doc(id string) *firestore.DocumentRef {
	if id == "" || strings.Contains(id, "/") {
		return nil
	}
	return r.collection.Doc(id)
}

func (r *FirestoreTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	ref := r.doc(id)
	if ref == nil {
		return nil, ErrTaskNotFound
	}
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", id, err)
	}
	return decodeSnapshot(doc)
}

func (r *FirestoreTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	created := cloneTask(task)
	created.ID = uuid.New().String()

	if _, err := r.collection.Doc(created.ID).Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (r *FirestoreTaskRepository) Update(ctx context.Context, id string, task *models.Task) (*models.Task, error) {
	ref := r.doc(id)
	if ref == nil {
		return nil, ErrTaskNotFound
	}
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "title", Value: task.Title},
		{Path: "description", Value: task.Description},
		{Path: "status", Value: string(task.Status)},
		{Path: "priority", Value: string(task.Priority)},
		{Path: "archived", Value: task.Archived},
		{Path: "updatedAt", Value: task.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return r.FindByID(ctx, id)
}

// Delete uses the Exists precondition so a missing document reports ErrTaskNotFound.
func (r *FirestoreTaskRepository) Delete(ctx context.Context, id string) error {
	ref := r.doc(id)
	if ref == nil {
		return ErrTaskNotFound
	}
	_, err := ref.Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreTaskRepository) Ping(ctx context.Context) error {
	iter := r.collection.Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (r *FirestoreTaskRepository) Close(ctx context.Context) error {
	return r.client.Close()
}
