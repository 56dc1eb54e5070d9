package loan

import "context"

type Repository interface {
	// Create inserts a new loan; the caller sets LoanID, Status and
	// RequestedAt.
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)

	// Transition writes next plus the status-specific fields already set on
	// l (DueDate for active, ReturnedAt for returned) as a conditional
	// update keyed on l's current status. Fails with ErrInvalidTransition
	// when the edge is illegal or the stored status no longer matches.
	// On success l.Status is updated to next.
	Transition(ctx context.Context, l *Loan, next Status) error

	ListByStatus(ctx context.Context, st Status) ([]Loan, error)
	// ListByBook filters by book; st narrows to one status when non-nil.
	ListByBook(ctx context.Context, bookID uint64, st *Status) ([]Loan, error)
	CountByBookAndStatus(ctx context.Context, bookID uint64, st Status) (int64, error)
}
