package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type TaskProofCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID      string
	url         string
	description string
}

// NewTaskProofCommand returns the task proof command.
func NewTaskProofCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskProofCommand {
	c := &TaskProofCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("proof", "Submit completion proof for a claimed task. At least one of --url or --description is required.")
	c.Cmd.Arg("task-id", "Task id.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("url", "URL proving the task was done.").StringVar(&c.url)
	c.Cmd.Flag("description", "Free-text proof description.").StringVar(&c.description)

	return c
}

func (c TaskProofCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskProofCommand) Run(ctx context.Context) error {
	controller, err := loadTaskController(ctx, c.rootCmd, c.taskID)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	view, err := controller.SubmitProof(ctx, c.url, c.description)
	if err != nil {
		return err
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Proof submitted for task %s", view.Task.ID))
}
