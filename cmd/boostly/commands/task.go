package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/lifecycle"
)

// TaskCommand is the parent command for marketplace task subcommands.
type TaskCommand struct {
	Cmd *kingpin.CmdClause
}

// NewTaskCommand returns the task parent command.
func NewTaskCommand(app *kingpin.Application) *TaskCommand {
	c := &TaskCommand{}

	c.Cmd = app.Command("task", "Browse and manage marketplace tasks.")

	return c
}

// loadTaskController creates a lifecycle controller for the viewer and
// loads the given task into it.
func loadTaskController(ctx context.Context, rootCmd *RootCommand, taskID string) (*lifecycle.Controller, error) {
	backend, err := newBackend(rootCmd)
	if err != nil {
		return nil, err
	}

	controller, err := lifecycle.NewController(lifecycle.ControllerConfig{
		Backend:  backend,
		ViewerID: rootCmd.UserID,
		Logger:   rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task controller: %w", err)
	}

	if _, err := controller.Load(ctx, taskID); err != nil {
		return nil, err
	}

	return controller, nil
}
