package http

import (
	"net/http"

	"library-portal-backend/internal/usecase/catalog"

	"github.com/labstack/echo/v4"
)

type BookHandler struct{ uc *catalog.Usecase }

func NewBookHandler(uc *catalog.Usecase) *BookHandler { return &BookHandler{uc: uc} }

func (h *BookHandler) ListBooks(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), bookID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type registerBookReq struct {
	Title  string `json:"title"  validate:"required,notblank"`
	Author string `json:"author"`
	Copies int    `json:"copies" validate:"gte=0"`
}

func (h *BookHandler) RegisterBook(c echo.Context) error {
	var req registerBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), catalog.RegisterBookInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
