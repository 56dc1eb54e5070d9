package bookmock

import (
	"context"

	domain "library-portal-backend/internal/domain/book"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones return zero values
// or context.Canceled for lookups.
type Repo struct {
	CreateFn             func(ctx context.Context, b *domain.Book) error
	GetByBookIDFn        func(ctx context.Context, bookID string) (*domain.Book, error)
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Book, error)
	ListFn               func(ctx context.Context) ([]domain.Book, error)
	DecrementAvailableFn func(ctx context.Context, id uint64) (int, error)
	IncrementAvailableFn func(ctx context.Context, id uint64) (int, error)
	SetAvailableFn       func(ctx context.Context, id uint64, n int) error
}

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	if m.GetByBookIDFn != nil {
		return m.GetByBookIDFn(ctx, bookID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) DecrementAvailable(ctx context.Context, id uint64) (int, error) {
	if m.DecrementAvailableFn != nil {
		return m.DecrementAvailableFn(ctx, id)
	}
	return 0, context.Canceled
}

func (m *Repo) IncrementAvailable(ctx context.Context, id uint64) (int, error) {
	if m.IncrementAvailableFn != nil {
		return m.IncrementAvailableFn(ctx, id)
	}
	return 0, context.Canceled
}

func (m *Repo) SetAvailable(ctx context.Context, id uint64, n int) error {
	if m.SetAvailableFn != nil {
		return m.SetAvailableFn(ctx, id, n)
	}
	return nil
}
