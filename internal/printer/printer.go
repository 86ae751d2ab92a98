package printer

import (
	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/model"
)

// SessionSummary is the wizard session state as rendered to the user.
type SessionSummary struct {
	Mode           string
	TaskID         string
	CurrentStep    model.StepIndex
	CompletedSteps []int
	Draft          model.TaskDraft
	StepErrors     model.FieldErrors
}

// Printer knows how to print marketplace task information in different
// formats.
type Printer interface {
	PrintTaskList(page client.TaskPage) error
	PrintTaskDetail(task model.Task, actions []model.TaskAction) error
	PrintSession(summary SessionSummary) error
	PrintMessage(msg string) error
}
