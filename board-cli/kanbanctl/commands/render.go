package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"kanban-board/backend/tasks-service/models"
	"kanban-board/board-cli/board"
)

type boardView struct {
	Counts  board.Counts                        `json:"counts"`
	Columns map[models.TaskStatus][]models.Task `json:"columns"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (a *app) renderBoard(w io.Writer) error {
	view := boardView{Counts: a.board.Counts(), Columns: map[models.TaskStatus][]models.Task{}}
	for _, status := range models.Statuses {
		view.Columns[status] = a.board.TasksForStatus(status)
	}
	if a.output == outputJSON {
		return writeJSON(w, view)
	}

	for _, status := range models.Statuses {
		column := view.Columns[status]
		fmt.Fprintf(w, "%s (%d)\n", status.Title(), len(column))
		if len(column) == 0 {
			fmt.Fprintln(w, "  no tasks")
		}
		for _, task := range column {
			fmt.Fprintf(w, "  [%s] %s  %s\n", task.Priority, task.Title, task.ID)
		}
	}
	fmt.Fprintf(w, "Total: %d\n", view.Counts.Total)
	return nil
}

func (a *app) renderTasks(w io.Writer, tasks []models.Task) error {
	if a.output == outputJSON {
		return writeJSON(w, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tARCHIVED")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", task.ID, task.Title, task.Status, task.Priority, task.Archived)
	}
	return tw.Flush()
}

func (a *app) renderTask(w io.Writer, task models.Task) error {
	if a.output == outputJSON {
		return writeJSON(w, task)
	}
	return a.renderTasks(w, []models.Task{task})
}
