package handler // handler package contains copy inventory handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/repository"
	"github.com/iliyamo/library-inventory/internal/service"
)

// UpdateCopies handles PUT /v1/books/:id/copies with a body of
// {"action": "increase"|"decrease", "quantity": n}. Validation errors
// return 400 before any mutation; an unknown book returns 404;
// availability and identifier-allocation failures return 500 with the
// structured message so clients can show the actual available count.
func (h *BookHandler) UpdateCopies(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}

	var body struct {
		Action   string `json:"action"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	action := strings.ToLower(strings.TrimSpace(body.Action))
	if action != service.ActionIncrease && action != service.ActionDecrease {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `invalid action, use "increase" or "decrease"`})
	}
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}
	if quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive number"})
	}

	ctx := c.Request().Context()
	actor := actorName(c)

	var newCount int
	if action == service.ActionIncrease {
		newCount, err = h.Inventory.Increase(ctx, bookID, quantity, actor)
	} else {
		newCount, err = h.Inventory.Decrease(ctx, bookID, quantity, actor)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			// Insufficient copies and id exhaustion both carry
			// messages meant for direct display.
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	unit := "copies"
	if quantity == 1 {
		unit = "copy"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"message":        "successfully " + action + "d " + strconv.Itoa(quantity) + " " + unit,
		"book_id":        bookID,
		"action":         action,
		"quantity":       quantity,
		"new_copy_count": newCount,
	})
}

// GetCopyCount handles GET /v1/books/:id/copies/count and returns
// per-status totals. A book with zero copies returns 404; clients that
// want zeros instead should use the book detail endpoint.
func (h *BookHandler) GetCopyCount(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}

	stats, err := h.Books.CopyStats(c.Request().Context(), bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get copy count"})
	}
	if stats.Total == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no copies found for this book"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"book_id":            bookID,
		"total_copies":       stats.Total,
		"available_copies":   stats.Available,
		"borrowed_copies":    stats.Borrowed,
		"unavailable_copies": stats.Unavailable,
	})
}

// GetCopies handles GET /v1/books/:id/copies and returns the ordered
// copy list for a book.
func (h *BookHandler) GetCopies(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}

	ctx := c.Request().Context()
	ok, err := h.Books.Exists(ctx, bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get book copies"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
	}

	copies, err := h.Copies.ListByBook(ctx, bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get book copies"})
	}

	out := make([]echo.Map, 0, len(copies))
	for _, cp := range copies {
		out = append(out, echo.Map{
			"copy_id":        cp.CopyID,
			"barcode":        cp.Barcode,
			"status":         cp.Status,
			"book_condition": cp.Condition,
			"location":       cp.Location,
			"date_added":     cp.DateAdded,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"book_id":      bookID,
		"total_copies": len(out),
		"copies":       out,
	})
}
