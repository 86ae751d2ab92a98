package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
)

type DraftPlatformCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	platform string
}

// NewDraftPlatformCommand returns the draft platform command.
func NewDraftPlatformCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftPlatformCommand {
	c := &DraftPlatformCommand{rootCmd: rootCmd}

	platforms := make([]string, 0, len(model.Platforms()))
	for _, p := range model.Platforms() {
		platforms = append(platforms, string(p))
	}

	c.Cmd = draftCmd.Cmd.Command("platform", "Set the platform of the draft.")
	c.Cmd.Arg("platform", "Target platform.").Required().EnumVar(&c.platform, platforms...)

	return c
}

func (c DraftPlatformCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftPlatformCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	session.SetPlatform(model.PlatformStep{Platform: model.Platform(c.platform)})
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Platform set to %s", c.platform))
}
