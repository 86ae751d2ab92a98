package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type DraftEditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewDraftEditCommand returns the draft edit command.
func NewDraftEditCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftEditCommand {
	c := &DraftEditCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("edit", "Load an existing task into the wizard for editing.")
	c.Cmd.Arg("task-id", "Task id to edit.").Required().StringVar(&c.taskID)

	return c
}

func (c DraftEditCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftEditCommand) Run(ctx context.Context) error {
	backend, err := newBackend(c.rootCmd)
	if err != nil {
		return err
	}

	task, err := backend.GetTaskByID(ctx, c.taskID)
	if err != nil {
		return fmt.Errorf("could not get task: %w", err)
	}

	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	if err := session.StartEdit(ctx, *task); err != nil {
		return fmt.Errorf("could not start edit session: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Editing task %s, all steps pre-completed", task.ID))
}
