package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/board-cli/kanbanctl/commands"

	"github.com/sirupsen/logrus"
)

func main() {
	// Errors are printed below; --verbose turns the log back on.
	logging.Logger.SetLevel(logrus.FatalLevel)
	logging.Logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
