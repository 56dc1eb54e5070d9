package catalog

import (
	"context"
	"errors"
	"time"

	"library-portal-backend/internal/domain/book"
	"library-portal-backend/pkg/id"
)

type Usecase struct{ books book.Repository }

func NewUsecase(books book.Repository) *Usecase { return &Usecase{books: books} }

type RegisterBookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies int    `json:"copies"`
}

type BookDTO struct {
	BookID          string    `json:"book_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

// Register adds a title to the catalog. Every copy starts on the shelf:
// total and available begin equal.
func (u *Usecase) Register(ctx context.Context, in RegisterBookInput) (*BookDTO, error) {
	if in.Title == "" || in.Copies < 0 {
		return nil, errors.New("invalid input")
	}
	b := &book.Book{
		BookID:          id.NewID32(),
		Title:           in.Title,
		Author:          in.Author,
		TotalCopies:     in.Copies,
		AvailableCopies: in.Copies,
	}
	if err := u.books.Create(ctx, b); err != nil {
		return nil, err
	}
	dto := toDTO(b)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, bookID string) (*BookDTO, error) {
	b, err := u.books.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(b)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]BookDTO, error) {
	bs, err := u.books.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BookDTO, 0, len(bs))
	for i := range bs {
		out = append(out, toDTO(&bs[i]))
	}
	return out, nil
}

func toDTO(b *book.Book) BookDTO {
	return BookDTO{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
	}
}
