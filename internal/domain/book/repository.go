package book

import "context"

// Repository is the inventory ledger. DecrementAvailable and
// IncrementAvailable must be atomic conditional writes at the storage layer;
// callers never gate a mutation on an earlier read.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByBookID(ctx context.Context, bookID string) (*Book, error)
	GetByID(ctx context.Context, id uint64) (*Book, error)
	List(ctx context.Context) ([]Book, error)

	// DecrementAvailable subtracts one available copy iff at least one is
	// left, returning the new count. Returns ErrOutOfStock when the
	// precondition fails at write time; the stored value is untouched.
	DecrementAvailable(ctx context.Context, id uint64) (int, error)
	// IncrementAvailable adds one available copy back and returns the new
	// count.
	IncrementAvailable(ctx context.Context, id uint64) (int, error)
	// SetAvailable overwrites the available count. Reserved for manual
	// reconciliation; lifecycle paths use the conditional writes above.
	SetAvailable(ctx context.Context, id uint64, n int) error
}
