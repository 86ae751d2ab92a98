package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
)

type DraftTypeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskType     string
	targetURL    string
	requirements []string
}

// NewDraftTypeCommand returns the draft type command.
func NewDraftTypeCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftTypeCommand {
	c := &DraftTypeCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("type", "Set the task type of the draft. Allowed types depend on the selected platform.")
	c.Cmd.Arg("type", "Task type (like, follow, comment, share, view, subscribe, repost).").Required().StringVar(&c.taskType)
	c.Cmd.Flag("target-url", "URL of the content the task targets.").StringVar(&c.targetURL)
	c.Cmd.Flag("requirement", "Extra requirement for performers (repeatable).").StringsVar(&c.requirements)

	return c
}

func (c DraftTypeCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftTypeCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	session.SetTaskType(model.TaskTypeStep{
		Type:         model.TaskType(c.taskType),
		TargetURL:    c.targetURL,
		Requirements: c.requirements,
	})
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Task type set to %s", c.taskType))
}
