package config

import (
	"os"
	"testing"
	"time"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "SERVER_PORT", "STORAGE_TYPE", "DATA_FILE", "MONGO_URI", "MONGO_DB_NAME",
		"MONGO_COLLECTION", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT")

	cfg, err := Load("3000")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "3000" || cfg.Addr() != ":3000" {
		t.Errorf("port = %q, addr = %q; want 3000", cfg.ServerPort, cfg.Addr())
	}
	if cfg.StorageType != StorageJSON {
		t.Errorf("StorageType = %q, want json", cfg.StorageType)
	}
	if cfg.JSON.DataFile != "data/tasks.json" {
		t.Errorf("DataFile = %q", cfg.JSON.DataFile)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "kanban" || cfg.Mongo.Collection != "tasks" {
		t.Errorf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:4200" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORAGE_TYPE", "Mongo")
	t.Setenv("MONGO_DB_NAME", "board")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load("3000")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.StorageType != StorageMongo {
		t.Errorf("StorageType = %q, want mongo", cfg.StorageType)
	}
	if cfg.Mongo.Database != "board" {
		t.Errorf("Database = %q, want board", cfg.Mongo.Database)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "http://a.test" || cfg.CORS.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %q, want two trimmed origins", cfg.CORS.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"json", Config{ServerPort: "1", StorageType: "json"}, false},
		{"unknown storage", Config{ServerPort: "1", StorageType: "sqlite"}, true},
		{"firestore without project", Config{ServerPort: "1", StorageType: "firestore"}, true},
		{"firestore with project", Config{ServerPort: "1", StorageType: "firestore", Firestore: FirestoreConfig{ProjectID: "p"}}, false},
		{"missing port", Config{StorageType: "json"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
