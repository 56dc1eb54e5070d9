package http

import (
	"net/http"

	"library-portal-backend/internal/domain/loan"
	"library-portal-backend/internal/usecase/lending"

	"github.com/labstack/echo/v4"
)

// AdminHandler is the librarian surface. Authorization happens upstream; by
// the time these run, the caller's identity has already been checked.
type AdminHandler struct{ uc *lending.Usecase }

func NewAdminHandler(uc *lending.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func loanIDParam(c echo.Context) (string, bool) {
	loanID := c.Param("loan_id")
	return loanID, reHex32.MatchString(loanID)
}

func (h *AdminHandler) ApproveLoan(c echo.Context) error {
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	res, err := h.uc.Approve(c.Request().Context(), loanID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) RejectLoan(c echo.Context) error {
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), loanID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) ReturnLoan(c echo.Context) error {
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	res, err := h.uc.Return(c.Request().Context(), loanID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ListLoans(c echo.Context) error {
	st := loan.Status(c.QueryParam("status"))
	if !st.Valid() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be one of requested|active|rejected|returned"})
	}
	out, err := h.uc.ListLoans(c.Request().Context(), st)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) ListBookLoans(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	var st *loan.Status
	if raw := c.QueryParam("status"); raw != "" {
		s := loan.Status(raw)
		if !s.Valid() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be one of requested|active|rejected|returned"})
		}
		st = &s
	}
	out, err := h.uc.ListBookLoans(c.Request().Context(), bookID, st)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) ReconcileBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	res, err := h.uc.Reconcile(c.Request().Context(), bookID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
