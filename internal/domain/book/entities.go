package book

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("book not found")
	// ErrOutOfStock means a conditional decrement found no available copy
	// at the moment of the write.
	ErrOutOfStock = errors.New("no available copies")
)

type Book struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	BookID string `gorm:"size:32;uniqueIndex:ux_books_book_id_active" json:"book_id"`
	Title  string `gorm:"size:255;not null" json:"title"`
	Author string `gorm:"size:255" json:"author"`
	// TotalCopies is the number of physical units the library owns.
	TotalCopies int `gorm:"not null;default:0" json:"total_copies"`
	// AvailableCopies is the number of units not tied to an active loan.
	// Never negative; mutated only through the conditional ledger writes.
	AvailableCopies int            `gorm:"not null;default:0" json:"available_copies"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string { return "books" }
