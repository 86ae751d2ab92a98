package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/app/submit"
	"github.com/boostly/boostly/internal/printer"
	"github.com/boostly/boostly/internal/wizard"
)

type DraftSubmitCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDraftSubmitCommand returns the draft submit command.
func NewDraftSubmitCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftSubmitCommand {
	c := &DraftSubmitCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("submit", "Submit the wizard payload, creating or updating the task.")

	return c
}

func (c DraftSubmitCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftSubmitCommand) Run(ctx context.Context) error {
	backend, err := newBackend(c.rootCmd)
	if err != nil {
		return err
	}

	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	mode := session.Mode()

	svc, err := submit.NewService(submit.ServiceConfig{
		Backend: backend,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, submit.Request{Session: session})
	if err != nil {
		return fmt.Errorf("could not submit draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	msg := fmt.Sprintf("Created task: %s", task.ID)
	if mode == wizard.ModeEdit {
		msg = fmt.Sprintf("Updated task: %s", task.ID)
	}
	return p.PrintMessage(msg)
}
