package uow

import (
	"context"

	"library-portal-backend/internal/domain/book"
	"library-portal-backend/internal/domain/loan"
)

type Repos struct {
	Books book.Repository
	Loans loan.Repository
}

// UnitOfWork runs fn with both repositories bound to one transaction.
// Lifecycle operations do NOT use this; they pair a conditional ledger write
// with a conditional status write and compensate on partial failure. The
// transactional path exists for manual reconciliation, where a consistent
// cross-entity snapshot is the whole point.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
