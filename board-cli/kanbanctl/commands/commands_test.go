package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanban-board/backend/tasks-service/handlers"
	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/metrics"
	"kanban-board/backend/tasks-service/models"
	"kanban-board/backend/tasks-service/repositories"
	"kanban-board/backend/tasks-service/services"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	logging.Logger.SetOutput(io.Discard)

	repo, err := repositories.NewJSONTaskRepository(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(handlers.NewRouter(handlers.NewTaskHandler(services.NewTaskService(repo)), metrics.New("kanbanctl-test"), []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func addTask(t *testing.T, apiURL string, args ...string) models.Task {
	t.Helper()
	out, err := run(t, apiURL, append([]string{"-o", "json", "add"}, args...)...)
	if err != nil {
		t.Fatalf("add %v: %v", args, err)
	}
	var task models.Task
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("decode add output %q: %v", out, err)
	}
	return task
}

func TestBoardShowsColumns(t *testing.T) {
	server := newAPIServer(t)

	first := addTask(t, server.URL, "Plan sprint", "-p", "high")
	second := addTask(t, server.URL, "Review PR")
	hidden := addTask(t, server.URL, "Old idea")

	if _, err := run(t, server.URL, "move", second.ID, "in-progress"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, server.URL, "archive", hidden.ID); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, server.URL, "board")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"To Do (1)", "In Progress (1)", "Done (0)", "[high] Plan sprint  " + first.ID, "Total: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("board output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Old idea") {
		t.Errorf("board shows archived task:\n%s", out)
	}

	out, err = run(t, server.URL, "-o", "json", "board")
	if err != nil {
		t.Fatal(err)
	}
	var view boardView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatal(err)
	}
	if view.Counts.Total != 2 || view.Counts.InProgress != 1 || len(view.Columns[models.StatusTodo]) != 1 {
		t.Errorf("json board = %+v", view)
	}

	out, err = run(t, server.URL, "archived")
	if err != nil || !strings.Contains(out, "Old idea") || strings.Contains(out, "Plan sprint") {
		t.Errorf("archived output = %q, %v", out, err)
	}
}

func TestListFlags(t *testing.T) {
	server := newAPIServer(t)
	addTask(t, server.URL, "Alpha", "-p", "low")
	addTask(t, server.URL, "Beta", "-p", "high")

	out, err := run(t, server.URL, "-o", "json", "list", "--order-by", "priority", "--order", "desc")
	if err != nil {
		t.Fatal(err)
	}
	var tasks []models.Task
	_ = json.Unmarshal([]byte(out), &tasks)
	if len(tasks) != 2 || tasks[0].Title != "Beta" {
		t.Errorf("ordered list = %+v", tasks)
	}

	out, err = run(t, server.URL, "list", "--priority", "low")
	if err != nil || !strings.Contains(out, "Alpha") || strings.Contains(out, "Beta") {
		t.Errorf("filtered list = %q, %v", out, err)
	}

	if _, err := run(t, server.URL, "list", "--status", "blocked"); err == nil {
		t.Error("expected error for invalid status flag")
	}
}

func TestEditAndDelete(t *testing.T) {
	server := newAPIServer(t)
	task := addTask(t, server.URL, "Draft", "-d", "first pass")

	if _, err := run(t, server.URL, "edit", task.ID); err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("edit without flags error = %v", err)
	}

	out, err := run(t, server.URL, "-o", "json", "edit", task.ID, "--title", "Final", "--priority", "high")
	if err != nil {
		t.Fatal(err)
	}
	var edited models.Task
	_ = json.Unmarshal([]byte(out), &edited)
	if edited.Title != "Final" || edited.Priority != models.PriorityHigh || edited.Description != "first pass" {
		t.Errorf("edited = %+v", edited)
	}

	if _, err := run(t, server.URL, "move", task.ID, "sideways"); err == nil {
		t.Error("expected error for invalid status")
	}

	out, err = run(t, server.URL, "delete", task.ID)
	if err != nil || !strings.Contains(out, "Deleted "+task.ID) {
		t.Errorf("delete = %q, %v", out, err)
	}
	if _, err := run(t, server.URL, "delete", task.ID); err == nil || !strings.Contains(err.Error(), "Task not found") {
		t.Errorf("second delete error = %v", err)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	server := newAPIServer(t)
	if _, err := run(t, server.URL, "add", "   "); err == nil || !strings.Contains(err.Error(), "Title is required") {
		t.Errorf("add blank title error = %v", err)
	}
}

func TestHealthAndConfigFile(t *testing.T) {
	server := newAPIServer(t)

	configPath := filepath.Join(t.TempDir(), "kanbanctl.yaml")
	if err := os.WriteFile(configPath, []byte("api-url: "+server.URL+"\noutput: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", configPath, "health"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var health models.HealthResponse
	if err := json.Unmarshal(out.Bytes(), &health); err != nil {
		t.Fatalf("health output %q: %v", out.String(), err)
	}
	if health.Status != "ok" || health.Storage != "json" {
		t.Errorf("health = %+v", health)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	server := newAPIServer(t)
	t.Setenv("KANBAN_API_URL", server.URL)
	t.Setenv("KANBAN_OUTPUT", "json")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"list"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("list output = %q, want []", out.String())
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	server := newAPIServer(t)
	if _, err := run(t, server.URL, "-o", "yaml", "health"); err == nil {
		t.Error("expected error for unknown output format")
	}
}
