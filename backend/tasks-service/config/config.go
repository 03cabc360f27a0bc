package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageJSON      = "json"
	StorageMongo     = "mongo"
	StorageFirestore = "firestore"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT"`
	StorageType     string        `env:"STORAGE_TYPE" env-default:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORS            CORSConfig
	Log             LogConfig
	JSON            JSONConfig
	Mongo           MongoConfig
	Firestore       FirestoreConfig
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:4200"`
}

type LogConfig struct {
	File  string `env:"LOG_FILE" env-default:"logs/tasks.log"`
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type JSONConfig struct {
	DataFile string `env:"DATA_FILE" env-default:"data/tasks.json"`
}

type MongoConfig struct {
	URI        string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database   string        `env:"MONGO_DB_NAME" env-default:"kanban"`
	Collection string        `env:"MONGO_COLLECTION" env-default:"tasks"`
	Timeout    time.Duration `env:"DB_TIMEOUT" env-default:"10s"`
}

type FirestoreConfig struct {
	ProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	CredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`
	Collection      string `env:"FIRESTORE_COLLECTION" env-default:"tasks"`
}

// Load reads an optional .env file and then the process environment.
// defaultPort is used when SERVER_PORT is unset.
func Load(defaultPort string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultPort
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.CORS.AllowedOrigins = CleanOrigins(c.CORS.AllowedOrigins)
	c.StorageType = strings.ToLower(strings.TrimSpace(c.StorageType))
	switch c.StorageType {
	case StorageJSON, StorageMongo:
	case StorageFirestore:
		if c.Firestore.ProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID is required when STORAGE_TYPE is firestore")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q (expected json, mongo or firestore)", c.StorageType)
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT is not set")
	}
	return nil
}

// CleanOrigins trims comma-split origins and drops empty entries.
func CleanOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	return cleaned
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
