package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the stored shape of a task; the id lives in _id as an ObjectID.
type taskDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      models.TaskStatus   `bson:"status"`
	Priority    models.TaskPriority `bson:"priority"`
	Archived    bool                `bson:"archived"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d *taskDocument) toTask() *models.Task {
	return &models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Archived:    d.Archived,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type MongoTaskRepository struct {
	client          *mongo.Client
	tasksCollection *mongo.Collection
}

// ConnectMongo dials uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database connection for MongoDB failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB connection ping error: %w", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", uri)
	return client, nil
}

func NewMongoTaskRepository(client *mongo.Client, dbName, collectionName string) *MongoTaskRepository {
	logging.Logger.Infof("Event ID: DB_COLLECTION_SET, Description: Using MongoDB collection: %s/%s", dbName, collectionName)
	return &MongoTaskRepository{
		client:          client,
		tasksCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *MongoTaskRepository) Name() string {
	return "mongo"
}

// EnsureIndexes creates the index backing the default board listing.
func (r *MongoTaskRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "archived", Value: 1}, {Key: "status", Value: 1}},
	}
	if _, err := r.tasksCollection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create archived/status index: %w", err)
	}
	return nil
}

// buildFilter translates the list query into a MongoDB filter. The search term
// is matched literally and case-insensitively against the title.
func buildFilter(query models.TaskQuery) bson.M {
	filter := bson.M{}
	if archived, ok := query.ArchivedFilter(); ok {
		filter["archived"] = archived
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Priority != "" {
		filter["priority"] = query.Priority
	}
	if query.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"}
	}
	return filter
}

// findOptions pushes field sorts down to MongoDB. Priority has no natural
// storage order and is sorted after the fetch.
func findOptions(query models.TaskQuery) *options.FindOptions {
	opts := options.Find()
	switch query.OrderBy {
	case models.OrderByCreatedAt, models.OrderByUpdatedAt, models.OrderByTitle:
		direction := 1
		if query.Descending() {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: query.OrderBy, Value: direction}, {Key: "_id", Value: 1}})
	}
	return opts
}

func (r *MongoTaskRepository) FindAll(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	cursor, err := r.tasksCollection.Find(ctx, buildFilter(query), findOptions(query))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*models.Task{}
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, doc.toTask())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	if query.OrderBy == models.OrderByPriority {
		SortTasks(tasks, query)
	}
	return tasks, nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	var doc taskDocument
	if err := r.tasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", id, err)
	}
	return doc.toTask(), nil
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Archived:    task.Archived,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if _, err := r.tasksCollection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return doc.toTask(), nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, id string, task *models.Task) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"archived":    task.Archived,
		"updatedAt":   task.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = r.tasksCollection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return doc.toTask(), nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrTaskNotFound
	}

	result, err := r.tasksCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *MongoTaskRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
