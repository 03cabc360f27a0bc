package commands

import (
	"fmt"

	"kanban-board/backend/tasks-service/models"

	"github.com/spf13/cobra"
)

func newBoardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the active tasks in their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.board.Load(cmd.Context()); err != nil {
				return err
			}
			return a.renderBoard(cmd.OutOrStdout())
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	var status, priority, archived, search, orderBy, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := models.TaskQuery{Archived: archived, Search: search, OrderBy: orderBy, Order: order}
			if status != "" {
				parsed, ok := models.ParseStatus(status)
				if !ok {
					return fmt.Errorf("invalid status %q", status)
				}
				query.Status = parsed
			}
			if priority != "" {
				parsed, ok := models.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority %q", priority)
				}
				query.Priority = parsed
			}

			tasks, err := a.client.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return a.renderTasks(cmd.OutOrStdout(), tasks)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "todo, in-progress or done")
	cmd.Flags().StringVar(&priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&archived, "archived", models.ArchivedFalse, "false, true or all")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title match")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "createdAt, updatedAt, priority or title")
	cmd.Flags().StringVar(&order, "order", models.OrderAsc, "asc or desc")
	return cmd
}

func newAddCommand(a *app) *cobra.Command {
	var description, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the To Do column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := models.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("invalid priority %q", priority)
			}
			task, err := a.board.AddTask(cmd.Context(), args[0], description, p)
			if err != nil {
				return err
			}
			return a.renderTask(cmd.OutOrStdout(), task)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(models.PriorityMedium), "low, medium or high")
	return cmd
}

func newMoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := models.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("invalid status %q", args[1])
			}
			task, err := a.board.MoveTask(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			return a.renderTask(cmd.OutOrStdout(), task)
		},
	}
}

func newArchiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Hide a task from the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.board.ArchiveTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.renderTask(cmd.OutOrStdout(), task)
		},
	}
}

func newUnarchiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <id>",
		Short: "Put an archived task back on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.board.UnarchiveTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.renderTask(cmd.OutOrStdout(), task)
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	var title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change some fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.PatchTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("status") {
				patch.Status = &status
			}
			if flags.Changed("priority") {
				patch.Priority = &priority
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one of --title, --description, --status, --priority")
			}

			task, err := a.board.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.renderTask(cmd.OutOrStdout(), task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.board.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newArchivedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archived",
		Short: "List archived tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.client.List(cmd.Context(), models.TaskQuery{Archived: models.ArchivedTrue})
			if err != nil {
				return err
			}
			return a.renderTasks(cmd.OutOrStdout(), tasks)
		},
	}
}

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the tasks API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), health)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (storage: %s, at %s)\n", health.Status, health.Storage, health.Timestamp)
			return nil
		},
	}
}
