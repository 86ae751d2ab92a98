package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
)

type DraftBudgetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	perTask    float64
	count      int
	serviceFee float64
}

// NewDraftBudgetCommand returns the draft budget command.
func NewDraftBudgetCommand(rootCmd *RootCommand, draftCmd *DraftCommand) *DraftBudgetCommand {
	c := &DraftBudgetCommand{rootCmd: rootCmd}

	c.Cmd = draftCmd.Cmd.Command("budget", "Set the budget of the draft.")
	c.Cmd.Flag("per-task", "Budget paid per completed task.").Required().Float64Var(&c.perTask)
	c.Cmd.Flag("count", "Number of task slots.").Required().IntVar(&c.count)
	c.Cmd.Flag("service-fee", "Marketplace service fee.").Float64Var(&c.serviceFee)

	return c
}

func (c DraftBudgetCommand) Name() string { return c.Cmd.FullCommand() }

func (c DraftBudgetCommand) Run(ctx context.Context) error {
	session, closeSession, err := openSession(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeSession()

	session.SetBudget(model.BudgetStep{
		BudgetPerTask: c.perTask,
		TaskCount:     c.count,
		ServiceFee:    c.serviceFee,
		TotalCost:     model.ComputeTotalCost(c.perTask, c.count, c.serviceFee),
	})
	if err := session.SaveNow(ctx); err != nil {
		return fmt.Errorf("could not save draft: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	total := model.ComputeTotalCost(c.perTask, c.count, c.serviceFee)
	return p.PrintMessage(fmt.Sprintf("Budget set: %.2f x %d (total: %.2f)", c.perTask, c.count, total))
}
