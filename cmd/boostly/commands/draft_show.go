package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type DraftShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewDraftShowCommand returns the draft show command.
func NewDraftShowCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftShowCommand {
	c := &DraftShowCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("show", "Show the wizard session state.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c DraftShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftShowCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintSession(sessionSummary(session)); err != nil {
		return fmt.Errorf("could not print session: %w", err)
	}

	return nil
}
