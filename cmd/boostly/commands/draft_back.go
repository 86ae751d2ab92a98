package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type DraftBackCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDraftBackCommand returns the draft back command.
func NewDraftBackCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftBackCommand {
	c := &DraftBackCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("back", "Go back to the previous step without validating.")

	return c
}

func (c DraftBackCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftBackCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	session.Retreat()
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Now on step %q", session.Current()))
}
