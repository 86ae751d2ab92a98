package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/lifecycle"
	"github.com/boostly/boostly/internal/printer"
)

// TaskLifecycleCommand is a single owner lifecycle action command
// (publish, pause, resume, cancel). All four share the same shape: load
// the task, run the mutation, print the refetched status.
type TaskLifecycleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	action func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error)
}

func newTaskLifecycleCommand(rootCmd *RootCommand, taskCmd *TaskCommand, name, help string, action func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error)) *TaskLifecycleCommand {
	c := &TaskLifecycleCommand{rootCmd: rootCmd, action: action}

	c.Cmd = taskCmd.Cmd.Command(name, help)
	c.Cmd.Arg("task-id", "Task id.").Required().StringVar(&c.taskID)

	return c
}

// NewTaskPublishCommand returns the task publish command.
func NewTaskPublishCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskLifecycleCommand {
	return newTaskLifecycleCommand(rootCmd, taskCmd, "publish", "Publish a draft task.",
		func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error) { return c.Publish(ctx) })
}

// NewTaskPauseCommand returns the task pause command.
func NewTaskPauseCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskLifecycleCommand {
	return newTaskLifecycleCommand(rootCmd, taskCmd, "pause", "Pause an active task.",
		func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error) { return c.Pause(ctx) })
}

// NewTaskResumeCommand returns the task resume command.
func NewTaskResumeCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskLifecycleCommand {
	return newTaskLifecycleCommand(rootCmd, taskCmd, "resume", "Resume a paused task.",
		func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error) { return c.Resume(ctx) })
}

// NewTaskCancelCommand returns the task cancel command.
func NewTaskCancelCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskLifecycleCommand {
	return newTaskLifecycleCommand(rootCmd, taskCmd, "cancel", "Cancel a task.",
		func(ctx context.Context, c *lifecycle.Controller) (lifecycle.TaskView, error) { return c.Cancel(ctx) })
}

func (c TaskLifecycleCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskLifecycleCommand) Run(ctx context.Context) error {
	controller, err := loadTaskController(ctx, c.rootCmd, c.taskID)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	view, err := c.action(ctx, controller)
	if err != nil {
		return err
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Task %s is now %s", view.Task.ID, view.Task.Status))
}
