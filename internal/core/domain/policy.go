package domain

import "time"

// Lending policy constants
const (
	// MaxActiveLoans is the maximum number of books a member may have
	// out at the same time (status BORROWED).
	MaxActiveLoans = 5

	// LoanPeriod is the fixed loan duration; the due date of a new
	// borrow record is the borrow date plus this period.
	LoanPeriod = 14 * 24 * time.Hour

	// DailyFineRate is the fine accrued per full day overdue, in
	// currency units.
	DailyFineRate = 1.0
)
