package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced user, product, or order
	// does not exist. Read operations never return it; a missing id
	// yields the zero-valued record instead.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned when a mutation is rejected by a
	// business precondition, such as insufficient stock or an
	// unavailable product. The store is left untouched.
	ErrInvalidState = errors.New("invalid state")
)
