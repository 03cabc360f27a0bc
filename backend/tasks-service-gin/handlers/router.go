package handlers

import (
	"net/http"
	"time"

	"kanban-board/backend/tasks-service/config"
	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestLogger logs every request through logrus and records it in m.
func requestLogger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		if m != nil {
			m.Observe(c.Request.Method, c.FullPath(), status, elapsed)
		}

		entry := logging.Logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": elapsed.String(),
		})
		if len(c.Errors) > 0 {
			entry.Warnf("Event ID: HTTP_REQUEST, Description: Request handled with errors: %s", c.Errors.String())
			return
		}
		entry.Info("Event ID: HTTP_REQUEST, Description: Request handled")
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Location"},
		MaxAge:        12 * time.Hour,
	}
	origins := config.CleanOrigins(allowedOrigins)
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// NewRouter builds the gin engine serving the task API, health and metrics.
func NewRouter(taskHandler *TaskHandler, m *metrics.Metrics, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestLogger(m))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	tasks := router.Group("/api/tasks")
	tasks.GET("", taskHandler.HandleGetTasks)
	tasks.POST("", taskHandler.HandleCreateTask)
	tasks.GET("/:id", taskHandler.HandleGetTask)
	tasks.PUT("/:id", taskHandler.HandleUpdateTask)
	tasks.PATCH("/:id", taskHandler.HandlePatchTask)
	tasks.DELETE("/:id", taskHandler.HandleDeleteTask)

	router.GET("/health", taskHandler.HandleHealth)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.NoRoute(func(c *gin.Context) {
		abort(c, newAPIError(http.StatusNotFound, "Not found"))
	})
	router.NoMethod(func(c *gin.Context) {
		abort(c, newAPIError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	})

	return router
}
