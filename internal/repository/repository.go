package repository

import "errors"

// Sentinel errors shared across repositories. Services and handlers match on
// these instead of driver-specific error codes.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmail      = errors.New("a record with this email already exists")
	ErrDuplicateAssignment = errors.New("user is already assigned this project")
)
