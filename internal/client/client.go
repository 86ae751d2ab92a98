package client

import (
	"context"

	"github.com/boostly/boostly/internal/model"
)

// SortOrder is the direction task listings are sorted in.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilters are the optional filters for task listings.
type TaskFilters struct {
	Status    *model.TaskStatus
	Platform  *model.Platform
	Type      *model.TaskType
	MinBudget *float64
	MaxBudget *float64
	OwnerID   string
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks []model.Task
	Page  int
	Limit int
	Total int
}

// Backend is the interface for the marketplace backend API. Implementations
// surface backend rejections verbatim, wrapped with model.ErrRejected.
type Backend interface {
	CreateTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (*model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filters TaskFilters) (*TaskPage, error)
	ClaimTask(ctx context.Context, taskID, performerID string) (*model.Assignment, error)
	PublishTask(ctx context.Context, id string) (*model.Task, error)
	PauseTask(ctx context.Context, id string) (*model.Task, error)
	ResumeTask(ctx context.Context, id string) (*model.Task, error)
	CancelTask(ctx context.Context, id string) (*model.Task, error)
	SubmitTaskProof(ctx context.Context, proof model.ProofSubmission) (*model.Submission, error)
}
