package main

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"kanban-board/backend/tasks-service/handlers"
	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
)

// corsHeaders are owned by the gateway and stripped from upstream responses.
var corsHeaders = []string{
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Headers",
	"Access-Control-Expose-Headers",
}

func reverseProxyURL(target *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		originalHost := req.Host
		director(req)
		req.Host = target.Host
		req.Header.Set("X-Forwarded-Host", originalHost)
	}

	proxy.ModifyResponse = func(response *http.Response) error {
		for _, header := range corsHeaders {
			response.Header.Del(header)
		}
		return nil
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logging.Logger.Errorf("Event ID: UPSTREAM_UNAVAILABLE, Description: %s %s -> %s: %v", r.Method, r.URL.Path, target, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Tasks service unavailable"})
	}

	return proxy
}

// newGateway routes the task API and health check to the tasks service.
func newGateway(target *url.URL, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	tasksProxy := reverseProxyURL(target)

	mux.Handle("/api/tasks", tasksProxy)
	mux.Handle("/api/tasks/", tasksProxy)
	mux.Handle("/health", tasksProxy)

	return handlers.EnableCORS(allowedOrigins)(mux)
}
