package loanmock

import (
	"context"

	domain "library-portal-backend/internal/domain/loan"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	TransitionFn           func(ctx context.Context, l *domain.Loan, next domain.Status) error
	ListByStatusFn         func(ctx context.Context, st domain.Status) ([]domain.Loan, error)
	ListByBookFn           func(ctx context.Context, bookID uint64, st *domain.Status) ([]domain.Loan, error)
	CountByBookAndStatusFn func(ctx context.Context, bookID uint64, st domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Transition(ctx context.Context, l *domain.Loan, next domain.Status) error {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, l, next)
	}
	// Default mirrors the store's edge guard so lifecycle tests stay honest.
	if !domain.CanTransition(l.Status, next) {
		return domain.ErrInvalidTransition
	}
	l.Status = next
	return nil
}

func (m *Repo) ListByStatus(ctx context.Context, st domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, st)
	}
	return nil, nil
}

func (m *Repo) ListByBook(ctx context.Context, bookID uint64, st *domain.Status) ([]domain.Loan, error) {
	if m.ListByBookFn != nil {
		return m.ListByBookFn(ctx, bookID, st)
	}
	return nil, nil
}

func (m *Repo) CountByBookAndStatus(ctx context.Context, bookID uint64, st domain.Status) (int64, error) {
	if m.CountByBookAndStatusFn != nil {
		return m.CountByBookAndStatusFn(ctx, bookID, st)
	}
	return 0, nil
}
