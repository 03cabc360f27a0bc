package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanban-board/backend/tasks-service-gin/handlers"
	"kanban-board/backend/tasks-service/config"
	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/metrics"
	"kanban-board/backend/tasks-service/repositories"
	"kanban-board/backend/tasks-service/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const serviceName = "tasks-service-gin"

func main() {
	cfg, err := config.Load("5000")
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	logging.InitLogger(logging.Options{SystemName: serviceName, File: cfg.Log.File, Level: cfg.Log.Level})
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tasks Service (gin)...")

	if logging.Logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := repositories.Open(context.Background(), cfg)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STORAGE_INIT_FAILED, Description: Storage %s could not be opened: %v", cfg.StorageType, err)
	}
	logging.Logger.Infof("Event ID: STORAGE_READY, Description: Using %s storage", repo.Name())

	taskHandler := handlers.NewTaskHandler(services.NewTaskService(repo))
	router := handlers.NewRouter(taskHandler, metrics.New(serviceName), cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down Tasks Service (gin)...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
	if err := repo.Close(ctx); err != nil {
		logging.Logger.Errorf("Event ID: STORAGE_CLOSE_FAILED, Description: %v", err)
	}
	logging.Logger.Info("Event ID: SERVER_STOPPED, Description: Tasks Service (gin) stopped")
}
