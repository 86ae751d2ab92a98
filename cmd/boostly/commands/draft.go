package commands

import (
	"fmt"
	"sort"

	"github.com/alecthomas/kingpin/v2"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
	"github.com/boostly/boostly/internal/wizard"
)

// DraftCommand is the parent command for the task creation wizard
// subcommands. Every subcommand rehydrates the persisted session, applies
// its change and saves synchronously before the process exits, the
// debounced auto-save path only matters for long-lived embedders.
type DraftCommand struct {
	Cmd *kingpin.CmdClause
}

// NewDraftCommand returns the draft parent command.
func NewDraftCommand(app *kingpin.Application) *DraftCommand {
	c := &DraftCommand{}

	c.Cmd = app.Command("draft", "Build a task through the creation wizard.")

	return c
}

// parseStep maps a step identifier to its index.
func parseStep(id string) (model.StepIndex, error) {
	for i := model.StepIndex(0); i < model.StepCount; i++ {
		if i.String() == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", id)
}

// stepIDs returns the identifiers of all steps in order.
func stepIDs() []string {
	ids := make([]string, model.StepCount)
	for i := model.StepIndex(0); i < model.StepCount; i++ {
		ids[i] = i.String()
	}
	return ids
}

// printStepErrors prints a step's validation errors as regular output,
// invalid input is user feedback, not a command failure.
func printStepErrors(p printer.Printer, step model.StepIndex, errs model.FieldErrors) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	if err := p.PrintMessage(fmt.Sprintf("Step %q has errors:", step)); err != nil {
		return err
	}
	for _, f := range fields {
		if err := p.PrintMessage(fmt.Sprintf("  %s: %s", f, errs[f])); err != nil {
			return err
		}
	}
	return nil
}

// sessionSummary builds the printable summary of a wizard session.
func sessionSummary(session *wizard.Session) printer.SessionSummary {
	return printer.SessionSummary{
		Mode:           string(session.Mode()),
		TaskID:         session.TaskID(),
		CurrentStep:    session.Current(),
		CompletedSteps: session.CompletedSteps(),
		Draft:          session.Payload(),
		StepErrors:     session.StepErrors(session.Current()),
	}
}
