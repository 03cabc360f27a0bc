package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/board-cli/board"
	"kanban-board/board-cli/client"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// app carries what every subcommand needs once the root has been configured.
type app struct {
	v      *viper.Viper
	client *client.TaskClient
	board  *board.Board
	output string
}

// NewRootCmd builds the kanbanctl command tree. Settings come from flags,
// KANBAN_* environment variables and an optional kanbanctl.yaml, in that order.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "kanbanctl",
		Short:         "Manage the kanban board from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path (default ./kanbanctl.yaml)")
	flags.String("api-url", "http://localhost:3000", "tasks API base url")
	flags.Duration("timeout", 10*time.Second, "request timeout")
	flags.StringP("output", "o", outputText, "output format: text or json")
	flags.BoolP("verbose", "v", false, "log client events to stderr")
	_ = a.v.BindPFlags(flags)

	rootCmd.AddCommand(
		newBoardCommand(a),
		newListCommand(a),
		newAddCommand(a),
		newMoveCommand(a),
		newArchiveCommand(a),
		newUnarchiveCommand(a),
		newEditCommand(a),
		newDeleteCommand(a),
		newArchivedCommand(a),
		newHealthCommand(a),
	)

	return rootCmd
}

func (a *app) configure(configFile string) error {
	a.v.SetEnvPrefix("KANBAN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if configFile != "" {
		a.v.SetConfigFile(configFile)
	} else {
		a.v.SetConfigName("kanbanctl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.kanbanctl")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if a.v.GetBool("verbose") {
		logging.Logger.SetLevel(logrus.InfoLevel)
	}

	a.output = strings.ToLower(a.v.GetString("output"))
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	c, err := client.NewTaskClient(a.v.GetString("api-url"), client.Options{Timeout: a.v.GetDuration("timeout")})
	if err != nil {
		return err
	}
	a.client = c
	a.board = board.New(c)
	return nil
}
