package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"library-portal-backend/internal/domain/book"
	"library-portal-backend/internal/testutil/bookmock"
)

func TestRegister_StartsFullyStocked(t *testing.T) {
	var created *book.Book
	uc := NewUsecase(&bookmock.Repo{
		CreateFn: func(ctx context.Context, b *book.Book) error {
			created = b
			return nil
		},
	})

	dto, err := uc.Register(context.Background(), RegisterBookInput{Title: "The Go Programming Language", Author: "Donovan & Kernighan", Copies: 4})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(dto.BookID) != 32 {
		t.Fatalf("BookID length = %d", len(dto.BookID))
	}
	if dto.TotalCopies != 4 || dto.AvailableCopies != 4 {
		t.Fatalf("copies = %d/%d, want 4/4", dto.AvailableCopies, dto.TotalCopies)
	}
	if created == nil || created.AvailableCopies != created.TotalCopies {
		t.Fatalf("persisted book = %+v, want available == total", created)
	}
}

func TestRegister_RejectsBadInput(t *testing.T) {
	uc := NewUsecase(&bookmock.Repo{})
	if _, err := uc.Register(context.Background(), RegisterBookInput{Title: "", Copies: 1}); err == nil {
		t.Fatal("empty title must be rejected")
	}
	if _, err := uc.Register(context.Background(), RegisterBookInput{Title: "x", Copies: -1}); err == nil {
		t.Fatal("negative copies must be rejected")
	}
}

func TestGet_PassesThroughNotFound(t *testing.T) {
	uc := NewUsecase(&bookmock.Repo{
		GetByBookIDFn: func(ctx context.Context, bookID string) (*book.Book, error) {
			return nil, book.ErrNotFound
		},
	})
	if _, err := uc.Get(context.Background(), strings.Repeat("a", 32)); !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestList_MapsAllBooks(t *testing.T) {
	uc := NewUsecase(&bookmock.Repo{
		ListFn: func(ctx context.Context) ([]book.Book, error) {
			return []book.Book{
				{BookID: strings.Repeat("a", 32), Title: "A", TotalCopies: 1, AvailableCopies: 1},
				{BookID: strings.Repeat("b", 32), Title: "B", TotalCopies: 2, AvailableCopies: 0},
			}, nil
		},
	})
	out, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[1].AvailableCopies != 0 {
		t.Fatalf("unexpected list: %+v", out)
	}
}
