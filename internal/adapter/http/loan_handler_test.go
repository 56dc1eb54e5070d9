package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookDomain "library-portal-backend/internal/domain/book"
	loanDomain "library-portal-backend/internal/domain/loan"
	"library-portal-backend/internal/testutil/bookmock"
	"library-portal-backend/internal/testutil/loanmock"
	uc "library-portal-backend/internal/usecase/lending"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func stockedBooks(publicID string, copies int) *bookmock.Repo {
	return &bookmock.Repo{
		GetByBookIDFn: func(ctx context.Context, bookID string) (*bookDomain.Book, error) {
			if bookID != publicID {
				return nil, bookDomain.ErrNotFound
			}
			return &bookDomain.Book{ID: 1, BookID: publicID, Title: "t", AvailableCopies: copies, TotalCopies: copies}, nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*bookDomain.Book, error) {
			return &bookDomain.Book{ID: id, BookID: publicID, AvailableCopies: copies, TotalCopies: copies}, nil
		},
		DecrementAvailableFn: func(ctx context.Context, id uint64) (int, error) {
			if copies < 1 {
				return 0, bookDomain.ErrOutOfStock
			}
			copies--
			return copies, nil
		},
		IncrementAvailableFn: func(ctx context.Context, id uint64) (int, error) { copies++; return copies, nil },
	}
}

// -------- tests --------

func TestSubmitRequest_Created(t *testing.T) {
	e := newEchoWithValidator()
	bookID := strings.Repeat("a", 32)

	usecase := uc.NewUsecase(stockedBooks(bookID, 1), &loanmock.Repo{}, nil, 0)
	h := NewLoanHandler(usecase)

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(map[string]any{
		"book_id":  bookID,
		"borrower": "reader@example.com",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitRequest(c); err != nil {
		t.Fatalf("SubmitRequest error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(loanDomain.StatusRequested) {
		t.Fatalf("status = %s, want requested", got.Status)
	}
	if got.BookID != bookID || got.Borrower != "reader@example.com" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestSubmitRequest_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&bookmock.Repo{}, &loanmock.Repo{}, nil, 0))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(map[string]any{
		"book_id":  "nope",
		"borrower": "   ",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitRequest(c); err != nil {
		t.Fatalf("SubmitRequest error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(resp.Details, "BookID", "hex") {
		t.Fatalf("missing BookID detail: %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "Borrower", "blank") {
		t.Fatalf("missing Borrower detail: %+v", resp.Details)
	}
}

func TestSubmitRequest_UnknownBookIs404(t *testing.T) {
	e := newEchoWithValidator()
	books := &bookmock.Repo{
		GetByBookIDFn: func(ctx context.Context, bookID string) (*bookDomain.Book, error) {
			return nil, bookDomain.ErrNotFound
		},
	}
	h := NewLoanHandler(uc.NewUsecase(books, &loanmock.Repo{}, nil, 0))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(map[string]any{
		"book_id":  strings.Repeat("b", 32),
		"borrower": "x",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitRequest(c); err != nil {
		t.Fatalf("SubmitRequest error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBorrow_CreatedActive(t *testing.T) {
	e := newEchoWithValidator()
	bookID := strings.Repeat("a", 32)
	h := NewLoanHandler(uc.NewUsecase(stockedBooks(bookID, 1), &loanmock.Repo{}, nil, 0))

	req := httptest.NewRequest(stdhttp.MethodPost, "/borrows", mustJSON(map[string]any{
		"book_id":  bookID,
		"borrower": "walk-in",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Borrow(c); err != nil {
		t.Fatalf("Borrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.LifecycleResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Loan.Status != string(loanDomain.StatusActive) {
		t.Fatalf("status = %s, want active", got.Loan.Status)
	}
	if got.AvailableCopies != 0 {
		t.Fatalf("available = %d, want 0", got.AvailableCopies)
	}
}

func TestBorrow_OutOfStockIs409(t *testing.T) {
	e := newEchoWithValidator()
	bookID := strings.Repeat("a", 32)
	h := NewLoanHandler(uc.NewUsecase(stockedBooks(bookID, 0), &loanmock.Repo{}, nil, 0))

	req := httptest.NewRequest(stdhttp.MethodPost, "/borrows", mustJSON(map[string]any{
		"book_id":  bookID,
		"borrower": "late",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Borrow(c); err != nil {
		t.Fatalf("Borrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetLoan_OKAndBadParam(t *testing.T) {
	e := newEchoWithValidator()
	bookID := strings.Repeat("a", 32)
	loanID := strings.Repeat("c", 32)

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, got string) (*loanDomain.Loan, error) {
			if got != loanID {
				return nil, loanDomain.ErrNotFound
			}
			return &loanDomain.Loan{LoanID: loanID, BookID: 1, Borrower: "x", Status: loanDomain.StatusRequested, RequestedAt: time.Now().UTC()}, nil
		},
	}
	h := NewLoanHandler(uc.NewUsecase(stockedBooks(bookID, 1), loans, nil, 0))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+loanID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/loans/:loan_id")
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// malformed path param
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(stdhttp.MethodGet, "/loans/xyz", nil), rec)
	c.SetPath("/loans/:loan_id")
	c.SetParamNames("loan_id")
	c.SetParamValues("xyz")
	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
