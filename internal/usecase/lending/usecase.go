package lending

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"library-portal-backend/internal/domain/book"
	"library-portal-backend/internal/domain/loan"
	"library-portal-backend/internal/domain/uow"
	"library-portal-backend/pkg/id"
)

// ErrInconsistent means a ledger write committed but the paired loan status
// write did not. One compensating reversal has already been attempted; if
// that reversal failed too, the wrapped message says so and the book needs
// manual reconciliation.
var ErrInconsistent = errors.New("ledger and loan record out of sync")

const DefaultLoanPeriod = 14 * 24 * time.Hour

// Usecase coordinates the inventory ledger and the loan record store so
// every stock mutation is paired 1:1 with a loan status transition. The
// ledger is always mutated first: its conditional write carries the real
// precondition, and the rarer status-write failure is compensated.
type Usecase struct {
	books      book.Repository
	loans      loan.Repository
	uow        uow.UnitOfWork
	loanPeriod time.Duration
}

func NewUsecase(books book.Repository, loans loan.Repository, tx uow.UnitOfWork, loanPeriod time.Duration) *Usecase {
	if loanPeriod <= 0 {
		loanPeriod = DefaultLoanPeriod
	}
	return &Usecase{books: books, loans: loans, uow: tx, loanPeriod: loanPeriod}
}

// SubmitRequest records a borrow request with no stock effect. Stock is
// checked at approval time only, so any number of simultaneous requests for
// one title are fine.
func (u *Usecase) SubmitRequest(ctx context.Context, in SubmitRequestInput) (*LoanDTO, error) {
	b, err := u.books.GetByBookID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanID:      id.NewID32(),
		BookID:      b.ID,
		Borrower:    in.Borrower,
		Status:      loan.StatusRequested,
		RequestedAt: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	dto := toDTO(l, b.BookID)
	return &dto, nil
}

// Approve moves a requested loan to active. The ledger decrement happens
// first; an out-of-stock failure leaves the loan requested. If the status
// write fails after a successful decrement the copy is incremented back.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*LifecycleResult, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.Status != loan.StatusRequested {
		return nil, loan.ErrInvalidTransition
	}
	b, err := u.books.GetByID(ctx, l.BookID)
	if err != nil {
		return nil, err
	}

	remaining, err := u.books.DecrementAvailable(ctx, l.BookID)
	if err != nil {
		return nil, err
	}

	due := time.Now().UTC().Add(u.loanPeriod)
	l.DueDate = &due
	if err := u.loans.Transition(ctx, l, loan.StatusActive); err != nil {
		return nil, u.rollback(ctx, l.BookID, err, func(ctx context.Context) error {
			_, rerr := u.books.IncrementAvailable(ctx, l.BookID)
			return rerr
		})
	}

	return &LifecycleResult{Loan: toDTO(l, b.BookID), AvailableCopies: remaining}, nil
}

// Reject moves a requested loan to rejected. Stock was never touched for a
// requested loan, so the ledger is left alone.
func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	b, err := u.books.GetByID(ctx, l.BookID)
	if err != nil {
		return nil, err
	}
	if err := u.loans.Transition(ctx, l, loan.StatusRejected); err != nil {
		return nil, err
	}

	dto := toDTO(l, b.BookID)
	return &dto, nil
}

// Return moves an active loan to returned, restocking first. If restocking
// fails the loan stays active: a book must never be marked returned without
// its copy going back on the shelf.
func (u *Usecase) Return(ctx context.Context, loanID string) (*LifecycleResult, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.Status != loan.StatusActive {
		return nil, loan.ErrInvalidTransition
	}
	b, err := u.books.GetByID(ctx, l.BookID)
	if err != nil {
		return nil, err
	}

	remaining, err := u.books.IncrementAvailable(ctx, l.BookID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l.ReturnedAt = &now
	if err := u.loans.Transition(ctx, l, loan.StatusReturned); err != nil {
		return nil, u.rollback(ctx, l.BookID, err, func(ctx context.Context) error {
			_, rerr := u.books.DecrementAvailable(ctx, l.BookID)
			return rerr
		})
	}

	return &LifecycleResult{Loan: toDTO(l, b.BookID), AvailableCopies: remaining}, nil
}

// Borrow is the unmediated catalog path: decrement, then create the loan
// already active, with the same out-of-stock check and the same
// rollback-on-partial-failure rule as Approve.
func (u *Usecase) Borrow(ctx context.Context, in BorrowInput) (*LifecycleResult, error) {
	b, err := u.books.GetByBookID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}

	remaining, err := u.books.DecrementAvailable(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := now.Add(u.loanPeriod)
	l := &loan.Loan{
		LoanID:      id.NewID32(),
		BookID:      b.ID,
		Borrower:    in.Borrower,
		Status:      loan.StatusActive,
		RequestedAt: now,
		DueDate:     &due,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, u.rollback(ctx, b.ID, err, func(ctx context.Context) error {
			_, rerr := u.books.IncrementAvailable(ctx, b.ID)
			return rerr
		})
	}

	return &LifecycleResult{Loan: toDTO(l, b.BookID), AvailableCopies: remaining}, nil
}

func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	b, err := u.books.GetByID(ctx, l.BookID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(l, b.BookID)
	return &dto, nil
}

func (u *Usecase) ListLoans(ctx context.Context, st loan.Status) ([]LoanDTO, error) {
	if !st.Valid() {
		return nil, loan.ErrInvalidTransition
	}
	ls, err := u.loans.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, ls)
}

func (u *Usecase) ListBookLoans(ctx context.Context, bookID string, st *loan.Status) ([]LoanDTO, error) {
	if st != nil && !st.Valid() {
		return nil, loan.ErrInvalidTransition
	}
	b, err := u.books.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	ls, err := u.loans.ListByBook(ctx, b.ID, st)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, ls)
}

// Reconcile is the manual repair hook for an escalated ErrInconsistent: in
// one transaction it recounts active loans and rewrites available_copies to
// total_copies minus that count.
func (u *Usecase) Reconcile(ctx context.Context, bookID string) (*ReconcileResult, error) {
	if u.uow == nil {
		return nil, errors.New("reconcile requires a transactional store")
	}
	var out *ReconcileResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Books.GetByBookID(ctx, bookID)
		if err != nil {
			return err
		}
		active, err := r.Loans.CountByBookAndStatus(ctx, b.ID, loan.StatusActive)
		if err != nil {
			return err
		}
		want := b.TotalCopies - int(active)
		if want < 0 {
			// More active loans than copies owned; clamp and report, the
			// drift shows up as before/after in the result.
			want = 0
		}
		if want != b.AvailableCopies {
			if err := r.Books.SetAvailable(ctx, b.ID, want); err != nil {
				return err
			}
		}
		out = &ReconcileResult{
			BookID:          b.BookID,
			TotalCopies:     b.TotalCopies,
			ActiveLoans:     active,
			AvailableBefore: b.AvailableCopies,
			AvailableAfter:  want,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// rollback reverses a committed ledger mutation after the paired loan write
// failed. Exactly one attempt, never retried: a failed reversal escalates as
// ErrInconsistent with both causes so an operator can reconcile by hand.
func (u *Usecase) rollback(ctx context.Context, bookID uint64, cause error, undo func(context.Context) error) error {
	if rerr := undo(ctx); rerr != nil {
		log.Printf("lending: compensation failed for book %d: %v (cause: %v); manual reconciliation required", bookID, rerr, cause)
		return fmt.Errorf("%w: compensation failed: %v (cause: %v)", ErrInconsistent, rerr, cause)
	}
	// Ledger restored. A stale-status cause is the caller's race to resolve,
	// not an inconsistency.
	if errors.Is(cause, loan.ErrInvalidTransition) || errors.Is(cause, loan.ErrNotFound) {
		return cause
	}
	return fmt.Errorf("%w: loan status write failed: %v", ErrInconsistent, cause)
}

func (u *Usecase) toDTOs(ctx context.Context, ls []loan.Loan) ([]LoanDTO, error) {
	publicIDs := make(map[uint64]string, len(ls))
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		pub, ok := publicIDs[ls[i].BookID]
		if !ok {
			b, err := u.books.GetByID(ctx, ls[i].BookID)
			if err != nil {
				return nil, err
			}
			pub = b.BookID
			publicIDs[ls[i].BookID] = pub
		}
		out = append(out, toDTO(&ls[i], pub))
	}
	return out, nil
}
