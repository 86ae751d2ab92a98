package lifecycle

import (
	"github.com/boostly/boostly/internal/model"
)

// DeriveActions computes the actions available on a task from its
// status, the viewer's ownership and the remaining slots. It is a pure
// function so the same task always renders the same action set.
func DeriveActions(status model.TaskStatus, isOwner bool, availableSlots int) []model.TaskAction {
	actions := []model.TaskAction{}

	// Proof submission is gated by status only, the backend enforces the
	// performer-only rule.
	if status == model.TaskStatusInProgress {
		actions = append(actions, model.TaskActionSubmitProof)
	}

	if !isOwner {
		live := status == model.TaskStatusOpen || status == model.TaskStatusActive
		if live && availableSlots > 0 {
			actions = append(actions, model.TaskActionClaim)
		}
		return actions
	}

	switch status {
	case model.TaskStatusDraft:
		actions = append(actions, model.TaskActionPublish)
	case model.TaskStatusActive:
		actions = append(actions, model.TaskActionPause)
	case model.TaskStatusPaused:
		actions = append(actions, model.TaskActionResume)
	}

	switch status {
	case model.TaskStatusDraft, model.TaskStatusActive, model.TaskStatusPaused:
		actions = append(actions, model.TaskActionCancel, model.TaskActionEdit)
	}

	return actions
}

// ActionsForViewer derives the available actions of a task as seen by a
// viewer. An empty viewer id means an unauthenticated viewer and is
// never an owner.
func ActionsForViewer(task model.Task, viewerID string) []model.TaskAction {
	isOwner := viewerID != "" && task.Creator.ID == viewerID
	return DeriveActions(task.Status, isOwner, task.AvailableSlots())
}
