package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("duplicate")
	// ErrInsufficientStock is returned by inventory updates when the stock
	// floor policy rejects a decrement.
	ErrInsufficientStock = errors.New("insufficient stock")
)
