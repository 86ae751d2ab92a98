package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a task in the list output (subset of fields).
type listItem struct {
	ID            string    `json:"id"`
	Platform      string    `json:"platform"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	BudgetPerTask float64   `json:"budget_per_task"`
	FilledSlots   int       `json:"filled_slots"`
	TotalSlots    int       `json:"total_slots"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// listOutput represents a task page output.
type listOutput struct {
	Tasks []listItem `json:"tasks"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int        `json:"total"`
}

// taskOutput represents the full task output.
type taskOutput struct {
	ID            string            `json:"id"`
	Platform      string            `json:"platform"`
	Type          string            `json:"type"`
	TargetURL     string            `json:"target_url,omitempty"`
	Requirements  []string          `json:"requirements,omitempty"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Instructions  string            `json:"instructions,omitempty"`
	BudgetPerTask float64           `json:"budget_per_task"`
	TotalSlots    int               `json:"total_slots"`
	FilledSlots   int               `json:"filled_slots"`
	ServiceFee    float64           `json:"service_fee"`
	TotalCost     float64           `json:"total_cost"`
	Targeting     map[string]string `json:"targeting,omitempty"`
	Status        string            `json:"status"`
	CreatorID     string            `json:"creator_id,omitempty"`
	CreatorName   string            `json:"creator_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// detailOutput represents the full task detail output.
type detailOutput struct {
	Task    taskOutput `json:"task"`
	Actions []string   `json:"actions"`
}

// sessionOutput represents the wizard session output.
type sessionOutput struct {
	Mode           string            `json:"mode"`
	TaskID         string            `json:"task_id,omitempty"`
	CurrentStep    string            `json:"current_step"`
	CompletedSteps []int             `json:"completed_steps"`
	Draft          model.TaskDraft   `json:"draft"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTaskList prints a task page in JSON format with a subset of fields.
func (j *JSONPrinter) PrintTaskList(page client.TaskPage) error {
	items := make([]listItem, len(page.Tasks))
	for i, task := range page.Tasks {
		items[i] = listItem{
			ID:            task.ID,
			Platform:      string(task.Platform),
			Type:          string(task.Type),
			Title:         task.Title,
			BudgetPerTask: task.BudgetPerTask,
			FilledSlots:   task.FilledSlots,
			TotalSlots:    task.TotalSlots,
			Status:        string(task.Status),
			CreatedAt:     task.CreatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput{
		Tasks: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
	})
}

// PrintTaskDetail prints a task and its available actions in JSON format.
func (j *JSONPrinter) PrintTaskDetail(task model.Task, actions []model.TaskAction) error {
	actionNames := make([]string, len(actions))
	for i, a := range actions {
		actionNames[i] = string(a)
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(detailOutput{
		Task: taskOutput{
			ID:            task.ID,
			Platform:      string(task.Platform),
			Type:          string(task.Type),
			TargetURL:     task.TargetURL,
			Requirements:  task.Requirements,
			Title:         task.Title,
			Description:   task.Description,
			Instructions:  task.Instructions,
			BudgetPerTask: task.BudgetPerTask,
			TotalSlots:    task.TotalSlots,
			FilledSlots:   task.FilledSlots,
			ServiceFee:    task.ServiceFee,
			TotalCost:     task.TotalCost,
			Targeting:     task.Targeting,
			Status:        string(task.Status),
			CreatorID:     task.Creator.ID,
			CreatorName:   task.Creator.DisplayName,
			CreatedAt:     task.CreatedAt.UTC(),
			UpdatedAt:     task.UpdatedAt.UTC(),
		},
		Actions: actionNames,
	})
}

// PrintSession prints the wizard session state in JSON format.
func (j *JSONPrinter) PrintSession(summary SessionSummary) error {
	output := sessionOutput{
		Mode:           summary.Mode,
		TaskID:         summary.TaskID,
		CurrentStep:    summary.CurrentStep.String(),
		CompletedSteps: summary.CompletedSteps,
		Draft:          summary.Draft,
		Errors:         summary.StepErrors,
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
