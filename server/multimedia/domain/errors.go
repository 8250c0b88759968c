package domain

import "errors"

var (
	// ErrEntityNotFound means the owner (user or accommodation) does not exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrFieldEmpty means the owner exists but carries no binary payload.
	// Distinct from ErrEntityNotFound so download misses can be reported
	// with the right cause.
	ErrFieldEmpty = errors.New("binary field is empty")

	// ErrIndexOutOfRange means the addressed gallery slot does not exist.
	ErrIndexOutOfRange = errors.New("multimedia index out of range")
)
