package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type TaskClaimCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewTaskClaimCommand returns the task claim command.
func NewTaskClaimCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskClaimCommand {
	c := &TaskClaimCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("claim", "Claim a slot on a live task.")
	c.Cmd.Arg("task-id", "Task id.").Required().StringVar(&c.taskID)

	return c
}

func (c TaskClaimCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskClaimCommand) Run(ctx context.Context) error {
	controller, err := loadTaskController(ctx, c.rootCmd, c.taskID)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	view, err := controller.Claim(ctx)
	if err != nil {
		return err
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Claimed task %s (%d slots left)", view.Task.ID, view.Task.AvailableSlots()))
}
