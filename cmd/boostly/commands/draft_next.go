package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type DraftNextCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDraftNextCommand returns the draft next command.
func NewDraftNextCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftNextCommand {
	c := &DraftNextCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("next", "Validate the current step and advance to the next one.")

	return c
}

func (c DraftNextCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftNextCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	step := session.Current()
	errs := session.Advance()

	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if !errs.Empty() {
		return printStepErrors(p, step, errs)
	}

	return p.PrintMessage(fmt.Sprintf("Step %q done, now on %q", step, session.Current()))
}
