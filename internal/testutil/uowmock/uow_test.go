package uowmock

import (
	"context"
	"errors"
	"testing"

	"library-portal-backend/internal/domain/uow"
	"library-portal-backend/internal/testutil/bookmock"
	"library-portal-backend/internal/testutil/loanmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	books := &bookmock.Repo{}
	loans := &loanmock.Repo{}
	repos := uow.Repos{Books: books, Loans: loans}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Books != books || r.Loans != loans {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_WithRepos_RunsFnDirectly(t *testing.T) {
	ctx := context.Background()
	books := &bookmock.Repo{}
	loans := &loanmock.Repo{}

	m := New().WithRepos(uow.Repos{Books: books, Loans: loans})

	called := false
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		called = true
		if r.Books != books || r.Loans != loans {
			t.Fatalf("WithRepos: repos not forwarded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !called {
		t.Fatalf("WithinTx: fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New() // no func, no repos
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_Reset(t *testing.T) {
	m := New().WithRepos(uow.Repos{})
	m.WithinTxFn = func(context.Context, func(uow.Repos) error) error { return nil }

	m.Reset()
	if m.WithinTxFn != nil || m.Repos != nil {
		t.Fatalf("Reset should clear all fields")
	}
}
