package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrInvalidTransition means the requested status change is not a legal
	// edge from the loan's current status (usually caller-side staleness).
	ErrInvalidTransition = errors.New("invalid loan status transition")
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusActive    Status = "active"
	StatusRejected  Status = "rejected"
	StatusReturned  Status = "returned"
)

// transitions is the closed edge set of the loan lifecycle:
// requested -> active | rejected, active -> returned.
// rejected and returned are terminal.
var transitions = map[Status][]Status{
	StatusRequested: {StatusActive, StatusRejected},
	StatusActive:    {StatusReturned},
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusActive, StatusRejected, StatusReturned:
		return true
	}
	return false
}

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	// Numeric FK to books.id.
	BookID uint64 `gorm:"not null;index:idx_loans_book_status" json:"-"`
	// Borrower is an opaque identity string (name or email depending on the
	// entry point); validated non-empty at the request boundary.
	Borrower    string     `gorm:"size:255;not null" json:"borrower"`
	Status      Status     `gorm:"type:enum('requested','active','rejected','returned');default:'requested';index:idx_loans_book_status" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
