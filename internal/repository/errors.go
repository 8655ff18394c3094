package repository

import "errors"

// Errors shared by every repository implementation.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means the write violated a uniqueness constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Aliases per resource, so call sites read naturally.
var (
	ErrUserNotFound    = ErrNotFound
	ErrChatNotFound    = ErrNotFound
	ErrMessageNotFound = ErrNotFound
	ErrCallNotFound    = ErrNotFound
)
