package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from BorrowStatus
		to   BorrowStatus
		ok   bool
	}{
		{"borrowed to returned", StatusBorrowed, StatusReturned, true},
		{"borrowed to overdue", StatusBorrowed, StatusOverdue, true},
		{"borrowed to lost", StatusBorrowed, StatusLost, true},
		{"borrowed to damaged", StatusBorrowed, StatusDamaged, true},
		{"overdue to returned", StatusOverdue, StatusReturned, true},
		{"overdue to lost", StatusOverdue, StatusLost, true},
		{"returned is terminal", StatusReturned, StatusBorrowed, false},
		{"returned cannot go overdue", StatusReturned, StatusOverdue, false},
		{"lost is terminal", StatusLost, StatusReturned, false},
		{"damaged is terminal", StatusDamaged, StatusReturned, false},
		{"overdue cannot re-enter overdue", StatusOverdue, StatusOverdue, false},
		{"no self transition", StatusBorrowed, StatusBorrowed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusBorrowed.IsActive())
	assert.True(t, StatusOverdue.IsActive())
	assert.False(t, StatusReturned.IsActive())

	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusLost.IsTerminal())
	assert.True(t, StatusDamaged.IsTerminal())
	assert.False(t, StatusBorrowed.IsTerminal())

	assert.True(t, StatusBorrowed.IsValid())
	assert.False(t, BorrowStatus("MISPLACED").IsValid())
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	assert.True(t, errors.Is(NewNotFound("Book", "x"), ErrNotFound))
	assert.True(t, errors.Is(NewDuplicateEntity("Member", "Email", "a@b.c"), ErrDuplicateEntity))
	assert.True(t, errors.Is(NewInvalidOperation("return", "already returned"), ErrInvalidOperation))
	assert.True(t, errors.Is(NewMemberCannotBorrow("expired"), ErrCannotBorrow))
	assert.True(t, errors.Is(NewBookNotAvailable("Cosmos", "no copies"), ErrNotAvailable))

	var limitErr *MemberCannotBorrowError
	err := NewBorrowLimitReached(5, MaxActiveLoans)
	assert.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 5, limitErr.Current)
	assert.Equal(t, MaxActiveLoans, limitErr.Max)
}
