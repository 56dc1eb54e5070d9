package mysql

import (
	"context"
	"errors"

	bookDomain "library-portal-backend/internal/domain/book"

	"gorm.io/gorm"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

func (r *BookRepository) Create(ctx context.Context, b *bookDomain.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookRepository) GetByBookID(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	var out bookDomain.Book
	res := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, bookDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *BookRepository) GetByID(ctx context.Context, id uint64) (*bookDomain.Book, error) {
	var out bookDomain.Book
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, bookDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *BookRepository) List(ctx context.Context) ([]bookDomain.Book, error) {
	var out []bookDomain.Book
	res := r.db.WithContext(ctx).Order("title ASC, id ASC").Find(&out)
	return out, res.Error
}

// DecrementAvailable is a single conditional UPDATE: the `available_copies
// >= 1` check and the subtraction are one statement, so two concurrent calls
// against a book with one copy left serialize to one success and one
// ErrOutOfStock. Never implemented as read-then-write in application code.
func (r *BookRepository) DecrementAvailable(ctx context.Context, id uint64) (int, error) {
	res := r.db.WithContext(ctx).Model(&bookDomain.Book{}).
		Where("id = ? AND available_copies >= 1", id).
		UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the book is gone or the stock hit zero first.
		if _, err := r.GetByID(ctx, id); err != nil {
			return 0, err
		}
		return 0, bookDomain.ErrOutOfStock
	}
	return r.currentAvailable(ctx, id)
}

func (r *BookRepository) IncrementAvailable(ctx context.Context, id uint64) (int, error) {
	res := r.db.WithContext(ctx).Model(&bookDomain.Book{}).
		Where("id = ?", id).
		UpdateColumn("available_copies", gorm.Expr("available_copies + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, bookDomain.ErrNotFound
	}
	return r.currentAvailable(ctx, id)
}

func (r *BookRepository) SetAvailable(ctx context.Context, id uint64, n int) error {
	if n < 0 {
		return bookDomain.ErrOutOfStock
	}
	res := r.db.WithContext(ctx).Model(&bookDomain.Book{}).
		Where("id = ?", id).
		UpdateColumn("available_copies", n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return bookDomain.ErrNotFound
	}
	return nil
}

func (r *BookRepository) currentAvailable(ctx context.Context, id uint64) (int, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return b.AvailableCopies, nil
}
