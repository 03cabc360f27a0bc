package repositories

import (
	"context"
	"fmt"

	"kanban-board/backend/tasks-service/config"
	"kanban-board/backend/tasks-service/logging"
)

// Open builds the repository selected by cfg.StorageType.
func Open(ctx context.Context, cfg *config.Config) (TaskRepository, error) {
	switch cfg.StorageType {
	case config.StorageMongo:
		ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()

		client, err := ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		repo := NewMongoTaskRepository(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logging.Logger.Warnf("Event ID: DB_INDEX_FAILED, Description: %v", err)
		}
		return repo, nil

	case config.StorageFirestore:
		client, err := ConnectFirestore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return NewFirestoreTaskRepository(client, cfg.Firestore.Collection), nil

	case config.StorageJSON:
		return NewJSONTaskRepository(cfg.JSON.DataFile)
	}
	return nil, fmt.Errorf("unsupported storage type %q", cfg.StorageType)
}
