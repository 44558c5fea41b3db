package domain

// BorrowStatus represents the lifecycle state of a borrow record
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "BORROWED"
	StatusReturned BorrowStatus = "RETURNED"
	StatusOverdue  BorrowStatus = "OVERDUE"
	StatusLost     BorrowStatus = "LOST"
	StatusDamaged  BorrowStatus = "DAMAGED"
)

// IsValid reports whether s is a known borrow status
func (s BorrowStatus) IsValid() bool {
	switch s {
	case StatusBorrowed, StatusReturned, StatusOverdue, StatusLost, StatusDamaged:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
// Returned, Lost and Damaged are terminal; a record can still move
// from Overdue to Returned.
func (s BorrowStatus) IsTerminal() bool {
	switch s {
	case StatusReturned, StatusLost, StatusDamaged:
		return true
	}
	return false
}

// IsActive reports whether the copy is still out with the member
func (s BorrowStatus) IsActive() bool {
	return s == StatusBorrowed || s == StatusOverdue
}

// CanTransitionTo reports whether the state machine permits moving
// from s to next. Lost and Damaged are reachable only through the
// administrative status update, never through borrow/return/fine
// processing, but the state machine accepts them from any non-terminal
// state.
func (s BorrowStatus) CanTransitionTo(next BorrowStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusReturned, StatusLost, StatusDamaged:
		return true
	case StatusOverdue:
		return s == StatusBorrowed
	}
	return false
}
