package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
)

func TestGatewayForwardsTaskRoutes(t *testing.T) {
	logging.Logger.SetOutput(io.Discard)

	var gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	target, _ := url.Parse(upstream.URL)
	gateway := httptest.NewServer(newGateway(target, []string{"http://localhost:4200"}))
	defer gateway.Close()

	req, _ := http.NewRequest(http.MethodGet, gateway.URL+"/api/tasks?archived=all", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if gotPath != "/api/tasks" || gotQuery != "archived=all" {
		t.Errorf("upstream saw %s?%s", gotPath, gotQuery)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the gateway's value", got)
	}

	resp2, err := http.Get(gateway.URL + "/api/tasks/abc")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if gotPath != "/api/tasks/abc" {
		t.Errorf("upstream saw %s, want /api/tasks/abc", gotPath)
	}
}

func TestGatewayUpstreamDown(t *testing.T) {
	logging.Logger.SetOutput(io.Discard)

	upstream := httptest.NewServer(http.NotFoundHandler())
	target, _ := url.Parse(upstream.URL)
	upstream.Close()

	gateway := httptest.NewServer(newGateway(target, nil))
	defer gateway.Close()

	resp, err := http.Get(gateway.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	var body models.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error != "Tasks service unavailable" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestGatewayUnknownRoute(t *testing.T) {
	target, _ := url.Parse("http://127.0.0.1:1")
	rec := httptest.NewRecorder()
	newGateway(target, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
