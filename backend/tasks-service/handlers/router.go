package handlers

import (
	"net/http"

	"kanban-board/backend/tasks-service/metrics"

	"github.com/gorilla/mux"
)

// NewRouter wires the task routes, health, metrics and middleware. CORS wraps
// the whole router so preflight requests are answered before method matching.
func NewRouter(taskHandler *TaskHandler, m *metrics.Metrics, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger(m))

	r.HandleFunc("/api/tasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}", taskHandler.GetTaskByID).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", taskHandler.PatchTask).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/health", taskHandler.Health).Methods(http.MethodGet)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return EnableCORS(allowedOrigins)(r)
}
