package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/printer"
)

type DraftGotoCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	step string
}

// NewDraftGotoCommand returns the draft goto command.
func NewDraftGotoCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftGotoCommand {
	c := &DraftGotoCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("goto", "Jump directly to a step.")
	c.Cmd.Arg("step", "Step to jump to.").Required().EnumVar(&c.step, stepIDs()...)

	return c
}

func (c DraftGotoCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftGotoCommand) Run(ctx context.Context) error {
	step, err := parseStep(c.step)
	if err != nil {
		return err
	}

	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	if err := session.JumpTo(step); err != nil {
		return fmt.Errorf("could not jump to step: %w", err)
	}
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Now on step %q", session.Current()))
}
