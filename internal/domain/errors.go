package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition      = errors.New("illegal status transition")
	ErrConcurrentModification = errors.New("request was modified concurrently, reload and retry")
	ErrQuotaExceeded          = errors.New("daily request quota exceeded")
	ErrInvalidDueDate         = errors.New("due date is outside the orderable window")
	ErrNotFound               = errors.New("not found")
	ErrDetailsLocked          = errors.New("request details cannot be edited in the current status")
	ErrInvalidDetails         = errors.New("invalid request details")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDuplicateStrategy      = errors.New("duplicate detail strategy")
)

// IllegalTransitionError names the rejected pair. It matches ErrIllegalTransition.
type IllegalTransitionError struct {
	From Status
	To   Status
	Role Role
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s for role %q", e.From, e.To, e.Role)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
