package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
	"github.com/boostly/boostly/internal/utils/kv"
)

type DraftTargetingCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	criteria []string
	merge    bool
}

// NewDraftTargetingCommand returns the draft targeting command.
func NewDraftTargetingCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftTargetingCommand {
	c := &DraftTargetingCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("targeting", "Set the targeting criteria of the draft.")
	c.Cmd.Arg("criteria", "Targeting criteria as key=value pairs.").StringsVar(&c.criteria)
	c.Cmd.Flag("merge", "Merge with the existing criteria instead of replacing them.").BoolVar(&c.merge)

	return c
}

func (c DraftTargetingCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftTargetingCommand) Run(ctx context.Context) error {
	criteria, err := kv.ParseSpecs(c.criteria)
	if err != nil {
		return fmt.Errorf("invalid targeting criteria: %w", err)
	}

	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	if c.merge {
		criteria = kv.MergeMaps(session.Payload().Targeting.Criteria, criteria)
	}

	session.SetTargeting(model.TargetingStep{Criteria: criteria})
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Targeting criteria set (%d entries)", len(criteria)))
}
