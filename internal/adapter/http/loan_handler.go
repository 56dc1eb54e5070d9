package http

import (
	"net/http"

	"library-portal-backend/internal/usecase/lending"

	"github.com/labstack/echo/v4"
)

// LoanHandler is the patron-facing surface: request a book, borrow one
// directly from the catalog, look a loan up. Borrower identity arrives
// already authenticated; the handler only checks shape.
type LoanHandler struct{ uc *lending.Usecase }

func NewLoanHandler(uc *lending.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BookID   string `json:"book_id"  validate:"required,hex32"`
	Borrower string `json:"borrower" validate:"required,notblank"`
}

func (h *LoanHandler) SubmitRequest(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SubmitRequest(c.Request().Context(), lending.SubmitRequestInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Borrow(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Borrow(c.Request().Context(), lending.BorrowInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
