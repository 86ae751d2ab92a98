package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
)

type DraftContentCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title        string
	description  string
	instructions string
}

// NewDraftContentCommand returns the draft content command.
func NewDraftContentCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftContentCommand {
	c := &DraftContentCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("content", "Set the title, description and instructions of the draft.")
	c.Cmd.Arg("title", "Task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Task description.").StringVar(&c.description)
	c.Cmd.Flag("instructions", "Step by step instructions for performers.").StringVar(&c.instructions)

	return c
}

func (c DraftContentCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftContentCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	session.SetInstructions(model.InstructionsStep{
		Title:        c.title,
		Description:  c.description,
		Instructions: c.instructions,
	})
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage("Content updated")
}
