package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrRejected is returned when the backend rejects an operation.
	ErrRejected = errors.New("rejected by backend")
	// ErrActionInProgress is returned when a lifecycle action is requested
	// while another one is still running on the same controller.
	ErrActionInProgress = errors.New("action already in progress")
)
