package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boostly/boostly/internal/lifecycle"
	"github.com/boostly/boostly/internal/model"
)

func TestDeriveActions(t *testing.T) {
	tests := map[string]struct {
		status         model.TaskStatus
		isOwner        bool
		availableSlots int
		expActions     []model.TaskAction
	}{
		"A non-owner on an active task with open slots can claim": {
			status:         model.TaskStatusActive,
			availableSlots: 3,
			expActions:     []model.TaskAction{model.TaskActionClaim},
		},

		"A non-owner on an open task with open slots can claim": {
			status:         model.TaskStatusOpen,
			availableSlots: 1,
			expActions:     []model.TaskAction{model.TaskActionClaim},
		},

		"A non-owner on a full active task gets nothing": {
			status:         model.TaskStatusActive,
			availableSlots: 0,
			expActions:     []model.TaskAction{},
		},

		"A non-owner on a paused task gets nothing even with slots": {
			status:         model.TaskStatusPaused,
			availableSlots: 5,
			expActions:     []model.TaskAction{},
		},

		"A non-owner on an in-progress task can submit proof": {
			status:     model.TaskStatusInProgress,
			expActions: []model.TaskAction{model.TaskActionSubmitProof},
		},

		"A non-owner on a completed task gets nothing": {
			status:     model.TaskStatusCompleted,
			expActions: []model.TaskAction{},
		},

		"An owner on a draft task can publish, cancel and edit": {
			status:     model.TaskStatusDraft,
			isOwner:    true,
			expActions: []model.TaskAction{model.TaskActionPublish, model.TaskActionCancel, model.TaskActionEdit},
		},

		"An owner on an active task can pause, cancel and edit": {
			status:         model.TaskStatusActive,
			isOwner:        true,
			availableSlots: 3,
			expActions:     []model.TaskAction{model.TaskActionPause, model.TaskActionCancel, model.TaskActionEdit},
		},

		"An owner on a paused task can resume, cancel and edit": {
			status:     model.TaskStatusPaused,
			isOwner:    true,
			expActions: []model.TaskAction{model.TaskActionResume, model.TaskActionCancel, model.TaskActionEdit},
		},

		"An owner never claims their own live task": {
			status:         model.TaskStatusActive,
			isOwner:        true,
			availableSlots: 3,
			expActions:     []model.TaskAction{model.TaskActionPause, model.TaskActionCancel, model.TaskActionEdit},
		},

		"An owner on an in-progress task can submit proof": {
			status:     model.TaskStatusInProgress,
			isOwner:    true,
			expActions: []model.TaskAction{model.TaskActionSubmitProof},
		},

		"An owner on a cancelled task gets nothing": {
			status:     model.TaskStatusCancelled,
			isOwner:    true,
			expActions: []model.TaskAction{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := lifecycle.DeriveActions(test.status, test.isOwner, test.availableSlots)
			assert.Equal(t, test.expActions, got)
		})
	}
}

func TestActionsForViewer(t *testing.T) {
	task := model.Task{
		ID:          "t1",
		Status:      model.TaskStatusActive,
		TotalSlots:  10,
		FilledSlots: 4,
		Creator:     model.Creator{ID: "owner-1"},
	}

	t.Run("The creator is the owner", func(t *testing.T) {
		got := lifecycle.ActionsForViewer(task, "owner-1")
		assert.Contains(t, got, model.TaskActionPause)
		assert.NotContains(t, got, model.TaskActionClaim)
	})

	t.Run("Another user is not the owner", func(t *testing.T) {
		got := lifecycle.ActionsForViewer(task, "user-2")
		assert.Equal(t, []model.TaskAction{model.TaskActionClaim}, got)
	})

	t.Run("A missing identity is treated as non-owner", func(t *testing.T) {
		got := lifecycle.ActionsForViewer(task, "")
		assert.Equal(t, []model.TaskAction{model.TaskActionClaim}, got)
	})
}
