package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateEntity  = errors.New("duplicate entity")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCannotBorrow     = errors.New("member cannot borrow")
	ErrNotAvailable     = errors.New("book not available")
)

// NotFoundError reports a missing entity by id or identifier.
type NotFoundError struct {
	Entity     string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier '%s' was not found", e.Entity, e.Identifier)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a NotFoundError
func NewNotFound(entity, identifier string) error {
	return &NotFoundError{Entity: entity, Identifier: identifier}
}

// DuplicateEntityError reports a uniqueness violation on create/update.
type DuplicateEntityError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateEntityError) Unwrap() error { return ErrDuplicateEntity }

// NewDuplicateEntity creates a DuplicateEntityError
func NewDuplicateEntity(entity, field, value string) error {
	return &DuplicateEntityError{Entity: entity, Field: field, Value: value}
}

// InvalidOperationError reports a state-machine or invariant violation.
type InvalidOperationError struct {
	Operation string
	Reason    string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation '%s': %s", e.Operation, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }

// NewInvalidOperation creates an InvalidOperationError
func NewInvalidOperation(operation, reason string) error {
	return &InvalidOperationError{Operation: operation, Reason: reason}
}

// MemberCannotBorrowError reports an eligibility failure with the specific
// reason. Current/Max are filled only for the loan-limit rule.
type MemberCannotBorrowError struct {
	Reason  string
	Current int
	Max     int
}

func (e *MemberCannotBorrowError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("member cannot borrow books: %s (current: %d, max: %d)", e.Reason, e.Current, e.Max)
	}
	return fmt.Sprintf("member cannot borrow books: %s", e.Reason)
}

func (e *MemberCannotBorrowError) Unwrap() error { return ErrCannotBorrow }

// NewMemberCannotBorrow creates a MemberCannotBorrowError without counts
func NewMemberCannotBorrow(reason string) error {
	return &MemberCannotBorrowError{Reason: reason}
}

// NewBorrowLimitReached creates a MemberCannotBorrowError carrying the
// member's current active-loan count and the policy limit.
func NewBorrowLimitReached(current, max int) error {
	return &MemberCannotBorrowError{Reason: "maximum borrow limit reached", Current: current, Max: max}
}

// BookNotAvailableError reports that a book cannot be borrowed.
type BookNotAvailableError struct {
	Title  string
	Reason string
}

func (e *BookNotAvailableError) Error() string {
	return fmt.Sprintf("book '%s' is not available for borrowing: %s", e.Title, e.Reason)
}

func (e *BookNotAvailableError) Unwrap() error { return ErrNotAvailable }

// NewBookNotAvailable creates a BookNotAvailableError
func NewBookNotAvailable(title, reason string) error {
	return &BookNotAvailableError{Title: title, Reason: reason}
}
