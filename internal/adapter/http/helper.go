package http

import (
	"errors"
	"net/http"
	"strings"

	"library-portal-backend/internal/domain/book"
	"library-portal-backend/internal/domain/loan"
	"library-portal-backend/internal/usecase/lending"

	"github.com/labstack/echo/v4"
)

// domainError maps the core's tagged failures onto HTTP codes. Out-of-stock
// and stale-transition both come back 409: the caller must take a new action,
// not blindly retry.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, book.ErrNotFound), errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, book.ErrOutOfStock):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, lending.ErrInconsistent):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
