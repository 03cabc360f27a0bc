package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanban-board/backend/tasks-service/config"
	"kanban-board/backend/tasks-service/logging"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type gatewayConfig struct {
	Port            string        `env:"GATEWAY_PORT" env-default:"8000"`
	TasksServiceURL string        `env:"TASKS_SERVICE_URL" env-default:"http://localhost:3000"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:4200"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogFile         string        `env:"GATEWAY_LOG_FILE" env-default:"logs/api-gateway.log"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Logger.Fatalf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	var cfg gatewayConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}
	logging.InitLogger(logging.Options{SystemName: "api-gateway", File: cfg.LogFile, Level: "info"})

	target, err := url.Parse(cfg.TasksServiceURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: invalid TASKS_SERVICE_URL %q", cfg.TasksServiceURL)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newGateway(target, config.CleanOrigins(cfg.AllowedOrigins)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: GATEWAY_START, Description: Gateway on :%s proxying to %s", cfg.Port, target)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Gateway failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
	logging.Logger.Info("Event ID: GATEWAY_STOPPED, Description: Gateway stopped")
}
