package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type TaskStatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	format string
}

// NewTaskStatusCommand returns the task status command.
func NewTaskStatusCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskStatusCommand {
	c := &TaskStatusCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("status", "Show a task and the actions available to you.")
	c.Cmd.Arg("task-id", "Task id.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskStatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskStatusCommand) Run(ctx context.Context) error {
	controller, err := loadTaskController(ctx, c.rootCmd, c.taskID)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	view := controller.View()

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintTaskDetail(view.Task, view.Actions); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
