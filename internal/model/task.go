package model

import (
	"time"
)

// TaskStatus represents the lifecycle status of a task.
type TaskStatus string

const (
	// TaskStatusDraft indicates the task has been created but not published.
	TaskStatusDraft TaskStatus = "draft"
	// TaskStatusOpen indicates the task is published and accepting performers.
	TaskStatusOpen TaskStatus = "open"
	// TaskStatusActive indicates the task is live. Open and active are
	// equivalent for claim eligibility.
	TaskStatusActive TaskStatus = "active"
	// TaskStatusPaused indicates the owner paused the task.
	TaskStatusPaused TaskStatus = "paused"
	// TaskStatusInProgress indicates a performer is working on the task.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusCompleted indicates the task finished.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusCancelled indicates the task was cancelled by the owner.
	TaskStatusCancelled TaskStatus = "cancelled"
)

// TaskAction is a lifecycle action a viewer may take on a task.
type TaskAction string

const (
	TaskActionClaim       TaskAction = "claim"
	TaskActionSubmitProof TaskAction = "submit_proof"
	TaskActionPublish     TaskAction = "publish"
	TaskActionPause       TaskAction = "pause"
	TaskActionResume      TaskAction = "resume"
	TaskActionCancel      TaskAction = "cancel"
	TaskActionEdit        TaskAction = "edit"
)

// Creator is the denormalized summary of the user that owns a task, used
// for ownership checks.
type Creator struct {
	ID          string
	DisplayName string
	Verified    bool
}

// Task is the read model for a single task, rebuilt wholesale from backend
// data after every mutation.
type Task struct {
	ID            string
	Platform      Platform
	Type          TaskType
	TargetURL     string
	Requirements  []string
	Title         string
	Description   string
	Instructions  string
	BudgetPerTask float64
	TotalSlots    int
	FilledSlots   int
	ServiceFee    float64
	TotalCost     float64
	Targeting     map[string]string
	Status        TaskStatus
	Creator       Creator
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableSlots returns the number of unclaimed slots.
func (t Task) AvailableSlots() int {
	return t.TotalSlots - t.FilledSlots
}

// Live reports whether the task accepts claims status-wise (open and
// active are equivalent live states).
func (t Task) Live() bool {
	return t.Status == TaskStatusOpen || t.Status == TaskStatusActive
}

// ProofSubmission is a performer's proof that a claimed task was done.
// At least one of URL or Description is required.
type ProofSubmission struct {
	TaskID      string
	URL         string
	Description string
}

// Validate validates the proof submission. It must pass before any network
// call is attempted.
func (p ProofSubmission) Validate() FieldErrors {
	errs := FieldErrors{}
	if p.TaskID == "" {
		errs["taskId"] = "task id is required"
	}
	if p.URL == "" && p.Description == "" {
		errs["proof"] = "at least one of proof url or proof description is required"
	}
	return errs
}

// Submission is the backend's confirmation record for a submitted proof.
type Submission struct {
	ID          string
	TaskID      string
	PerformerID string
	URL         string
	Description string
	CreatedAt   time.Time
}

// Assignment is the backend's confirmation record for a claimed task.
type Assignment struct {
	ID          string
	TaskID      string
	PerformerID string
	CreatedAt   time.Time
}
