package domain

import "time"

type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "borrowed"
	LoanStatusReturned LoanStatus = "returned"
	LoanStatusOverdue  LoanStatus = "overdue"
)

// Loan records a book lent to a user. The status column is advisory: whether a
// loan is actionable as overdue is always derived from due_date against the
// evaluation date, never from the stored label alone.
type Loan struct {
	ID         int32      `json:"id"`
	UserID     int32      `json:"user_id"`
	BookID     int32      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
}
