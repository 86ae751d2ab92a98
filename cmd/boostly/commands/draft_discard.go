package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type DraftDiscardCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDraftDiscardCommand returns the draft discard command.
func NewDraftDiscardCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftDiscardCommand {
	c := &DraftDiscardCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("discard", "Discard the wizard session, removing both persisted slots.")

	return c
}

func (c DraftDiscardCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftDiscardCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	if err := session.Clear(ctx); err != nil {
		return fmt.Errorf("could not discard session: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage("Wizard session discarded")
}
