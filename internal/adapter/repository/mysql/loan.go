package mysql

import (
	"context"
	"errors"

	loanDomain "library-portal-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

// Transition guards the edge twice: once against the in-memory status (the
// storage boundary rejects illegal edges regardless of what the usecase
// checked) and once in the WHERE clause, so a concurrent writer that already
// moved the row makes this a zero-row update instead of a lost update.
func (r *LoanRepository) Transition(ctx context.Context, l *loanDomain.Loan, next loanDomain.Status) error {
	if !next.Valid() || !loanDomain.CanTransition(l.Status, next) {
		return loanDomain.ErrInvalidTransition
	}

	updates := map[string]any{"status": next}
	switch next {
	case loanDomain.StatusActive:
		updates["due_date"] = l.DueDate
	case loanDomain.StatusReturned:
		updates["returned_at"] = l.ReturnedAt
	}

	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ?", l.ID, l.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cur loanDomain.Loan
		if err := r.db.WithContext(ctx).Where("id = ?", l.ID).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}
		// Row exists but the stored status moved under us.
		return loanDomain.ErrInvalidTransition
	}
	l.Status = next
	return nil
}

func (r *LoanRepository) ListByStatus(ctx context.Context, st loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ?", st).
		Order("requested_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByBook(ctx context.Context, bookID uint64, st *loanDomain.Status) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Where("book_id = ?", bookID)
	if st != nil {
		q = q.Where("status = ?", *st)
	}
	var out []loanDomain.Loan
	res := q.Order("requested_at ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByBookAndStatus(ctx context.Context, bookID uint64, st loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("book_id = ? AND status = ?", bookID, st).
		Count(&n)
	return n, res.Error
}
