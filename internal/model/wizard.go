package model

import (
	"strings"
	"time"
)

// StepIndex identifies one of the five fixed wizard steps by position.
type StepIndex int

const (
	StepPlatform StepIndex = iota
	StepTaskType
	StepInstructions
	StepBudget
	StepTargeting

	// StepCount is the fixed number of wizard steps.
	StepCount = 5
)

// stepIDs maps step indices to their stable identifiers, used as keys for
// step-scoped validation errors and in persisted sessions.
var stepIDs = [StepCount]string{
	"platform",
	"task_type",
	"instructions",
	"budget",
	"targeting",
}

// String returns the stable identifier of the step.
func (s StepIndex) String() string {
	if s < 0 || s >= StepCount {
		return "unknown"
	}
	return stepIDs[s]
}

// Valid reports whether the index addresses one of the five steps.
func (s StepIndex) Valid() bool {
	return s >= 0 && s < StepCount
}

// FieldErrors maps field names to validation error messages. An empty map
// means the validated payload is valid. Validation failures are data for
// the caller to render, never a returned error.
type FieldErrors map[string]string

// Empty reports whether there are no field errors.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// PlatformStep is the payload of the first wizard step.
type PlatformStep struct {
	Platform Platform `json:"platform,omitempty"`
}

// Validate checks the platform selection.
func (s PlatformStep) Validate() FieldErrors {
	errs := FieldErrors{}
	if s.Platform == "" {
		errs["platform"] = "a platform must be selected"
	} else if !ValidPlatform(s.Platform) {
		errs["platform"] = "unknown platform: " + string(s.Platform)
	}
	return errs
}

// TaskTypeStep is the payload of the second wizard step. The allowed task
// types depend on the platform selected in the first step.
type TaskTypeStep struct {
	Type         TaskType `json:"type,omitempty"`
	TargetURL    string   `json:"target_url,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// Validate checks the task type against the selected platform's whitelist.
func (s TaskTypeStep) Validate(platform Platform) FieldErrors {
	errs := FieldErrors{}
	if s.Type == "" {
		errs["type"] = "a task type must be selected"
		return errs
	}
	if !ValidTaskTypeForPlatform(platform, s.Type) {
		errs["type"] = "task type " + string(s.Type) + " is not available on platform " + string(platform)
	}
	return errs
}

// InstructionsStep is the payload of the third wizard step.
type InstructionsStep struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Validate checks the free-text content fields.
func (s InstructionsStep) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(s.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(s.Description) == "" {
		errs["description"] = "description is required"
	}
	return errs
}

// BudgetStep is the payload of the fourth wizard step.
//
// TotalCost is accepted as supplied and not cross-checked against
// BudgetPerTask*TaskCount+ServiceFee, mirroring the backend contract.
// Callers that want a consistent value use ComputeTotalCost.
type BudgetStep struct {
	BudgetPerTask float64 `json:"budget_per_task"`
	TaskCount     int     `json:"task_count"`
	ServiceFee    float64 `json:"service_fee"`
	TotalCost     float64 `json:"total_cost"`
}

// Validate checks the budget numbers.
func (s BudgetStep) Validate() FieldErrors {
	errs := FieldErrors{}
	if s.BudgetPerTask <= 0 {
		errs["budget_per_task"] = "budget per task must be greater than zero"
	}
	if s.TaskCount <= 0 {
		errs["task_count"] = "number of task slots must be greater than zero"
	}
	return errs
}

// ComputeTotalCost derives the total cost from the budget fields.
func ComputeTotalCost(budgetPerTask float64, taskCount int, serviceFee float64) float64 {
	return budgetPerTask*float64(taskCount) + serviceFee
}

// TargetingStep is the payload of the fifth wizard step. Targeting has no
// required fields, any well-formed criteria map is accepted.
type TargetingStep struct {
	Criteria map[string]string `json:"criteria,omitempty"`
}

// Validate accepts any criteria map, rejecting only empty keys so
// malformed input is not silently coerced.
func (s TargetingStep) Validate() FieldErrors {
	errs := FieldErrors{}
	for k := range s.Criteria {
		if strings.TrimSpace(k) == "" {
			errs["criteria"] = "criteria keys must not be empty"
		}
	}
	return errs
}

// TaskDraft is the assembled five-step wizard payload, the single
// structure submitted as a create or update request.
type TaskDraft struct {
	Platform     PlatformStep     `json:"platform"`
	TaskType     TaskTypeStep     `json:"task_type"`
	Instructions InstructionsStep `json:"instructions"`
	Budget       BudgetStep       `json:"budget"`
	Targeting    TargetingStep    `json:"targeting"`
}

// ValidateStep runs the validator of a single step against the draft's
// current payloads.
func (d TaskDraft) ValidateStep(step StepIndex) FieldErrors {
	switch step {
	case StepPlatform:
		return d.Platform.Validate()
	case StepTaskType:
		return d.TaskType.Validate(d.Platform.Platform)
	case StepInstructions:
		return d.Instructions.Validate()
	case StepBudget:
		return d.Budget.Validate()
	case StepTargeting:
		return d.Targeting.Validate()
	}
	return FieldErrors{"step": "unknown step"}
}

// StoredSession is the JSON shape persisted in a wizard session slot.
// TaskID is set only for the edit slot.
type StoredSession struct {
	TaskID           string    `json:"task_id,omitempty"`
	Draft            TaskDraft `json:"draft"`
	CurrentStepIndex StepIndex `json:"current_step_index"`
	CompletedSteps   []int     `json:"completed_steps"`
	SavedAt          time.Time `json:"saved_at"`
}
