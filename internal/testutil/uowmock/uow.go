package uowmock

import (
	"context"
	"errors"

	"library-portal-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in WithinTxFn in a test, or set Repos to run fn directly against a
// fixed repo bundle (no transaction semantics, which is fine for unit tests).
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
	Repos      *uow.Repos
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithRepos(r uow.Repos) *UoW { m.Repos = &r; return m }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	if m.Repos != nil {
		return fn(*m.Repos)
	}
	return errUnimplemented
}
