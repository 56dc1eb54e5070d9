package lending

import (
	"time"

	"library-portal-backend/internal/domain/loan"
)

type SubmitRequestInput struct {
	BookID   string `json:"book_id"`
	Borrower string `json:"borrower"`
}

// BorrowInput feeds the unmediated catalog flow: no request/approval step,
// the loan is created already active.
type BorrowInput struct {
	BookID   string `json:"book_id"`
	Borrower string `json:"borrower"`
}

type LoanDTO struct {
	LoanID      string     `json:"loan_id"`
	BookID      string     `json:"book_id"`
	Borrower    string     `json:"borrower"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
}

// LifecycleResult is returned by every operation that moved stock together
// with a loan, so the caller sees the post-operation copy count.
type LifecycleResult struct {
	Loan            LoanDTO `json:"loan"`
	AvailableCopies int     `json:"available_copies"`
}

type ReconcileResult struct {
	BookID          string `json:"book_id"`
	TotalCopies     int    `json:"total_copies"`
	ActiveLoans     int64  `json:"active_loans"`
	AvailableBefore int    `json:"available_before"`
	AvailableAfter  int    `json:"available_after"`
}

func toDTO(l *loan.Loan, publicBookID string) LoanDTO {
	return LoanDTO{
		LoanID:      l.LoanID,
		BookID:      publicBookID,
		Borrower:    l.Borrower,
		Status:      string(l.Status),
		RequestedAt: l.RequestedAt,
		DueDate:     l.DueDate,
		ReturnedAt:  l.ReturnedAt,
	}
}
