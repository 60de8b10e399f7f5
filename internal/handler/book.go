package handler // handler package contains catalog book handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/repository"
	"github.com/iliyamo/library-inventory/internal/service"
)

// BookHandler groups the repositories and the inventory service needed
// to manage catalog titles and their physical copies.
type BookHandler struct {
	Books     *repository.BookRepo
	Authors   *repository.AuthorRepo
	Copies    *repository.CopyRepo
	Logs      *repository.LogRepo
	Inventory *service.InventoryService
}

// NewBookHandler constructs a BookHandler and panics if any dependency is nil.
func NewBookHandler(books *repository.BookRepo, authors *repository.AuthorRepo, copies *repository.CopyRepo, logs *repository.LogRepo, inv *service.InventoryService) *BookHandler {
	if books == nil || authors == nil || copies == nil || logs == nil || inv == nil {
		panic("nil dependency passed to NewBookHandler")
	}
	return &BookHandler{Books: books, Authors: authors, Copies: copies, Logs: logs, Inventory: inv}
}

// bookBody is the JSON payload shared by create and update.
type bookBody struct {
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	Subtitle        *string  `json:"subtitle"`
	Description     *string  `json:"description"`
	Publisher       *string  `json:"publisher"`
	PublicationYear *int     `json:"publication_year"`
	Edition         *string  `json:"edition"`
	Language        string   `json:"language"`
	CategoryID      *uint64  `json:"category_id"`
	Authors         []string `json:"authors"`
	NumCopies       int      `json:"num_copies"`
}

func (b *bookBody) toModel(bookID uint64) *model.Book {
	lang := strings.TrimSpace(b.Language)
	if lang == "" {
		lang = "English"
	}
	return &model.Book{
		BookID:          bookID,
		ISBN:            strings.TrimSpace(b.ISBN),
		Title:           strings.TrimSpace(b.Title),
		Subtitle:        b.Subtitle,
		Description:     b.Description,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Edition:         b.Edition,
		Language:        lang,
		CategoryID:      b.CategoryID,
	}
}

// cleanAuthors trims names and drops empties, preserving order.
func cleanAuthors(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ListBooks handles GET /v1/books with limit/offset/search query
// parameters. Quantity per row is a live copy count.
func (h *BookHandler) ListBooks(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 5
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	search := c.QueryParam("search")

	items, total, err := h.Books.List(c.Request().Context(), limit, offset, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch books"})
	}
	if items == nil {
		items = []repository.BookListItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"books": items, "total": total})
}

// GetBook handles GET /v1/books/:id and returns book details together
// with author names and per-status copy counts.
func (h *BookHandler) GetBook(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	ctx := c.Request().Context()

	d, err := h.Books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch book details"})
	}
	names, err := h.Authors.NamesByBook(ctx, bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch authors"})
	}
	if names == nil {
		names = []string{}
	}
	stats, err := h.Books.CopyStats(ctx, bookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch copy counts"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"book_id":            d.BookID,
		"isbn":               d.ISBN,
		"title":              d.Title,
		"subtitle":           d.Subtitle,
		"description":        d.Description,
		"publisher":          d.Publisher,
		"publication_year":   d.PublicationYear,
		"edition":            d.Edition,
		"language":           d.Language,
		"category_id":        d.CategoryID,
		"category_name":      d.CategoryName,
		"category_type":      d.CategoryType,
		"authors":            names,
		"copy_count":         stats.Total,
		"available_copies":   stats.Available,
		"borrowed_copies":    stats.Borrowed,
		"unavailable_copies": stats.Unavailable,
	})
}

// CreateBook handles POST /v1/books. It allocates a 10-digit book id,
// inserts the book with its author links in one transaction, then
// creates the initial copies through the inventory service.
func (h *BookHandler) CreateBook(c echo.Context) error {
	var body bookBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.ISBN) == "" || strings.TrimSpace(body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isbn and title are required"})
	}
	numCopies := body.NumCopies
	if numCopies == 0 {
		numCopies = 1
	}
	if numCopies < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_copies must not be negative"})
	}

	ctx := c.Request().Context()
	tx, err := h.Books.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	bookID, err := repository.UniqueID(ctx, tx, repository.RandomBookID, "books", "book_id")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if err := h.Books.CreateTx(ctx, tx, body.toModel(bookID)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add book"})
	}
	for _, name := range cleanAuthors(body.Authors) {
		authorID, err := h.Authors.GetOrCreateTx(ctx, tx, name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to process authors"})
		}
		if err := h.Authors.LinkBookTx(ctx, tx, bookID, authorID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to link author"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add book"})
	}
	committed = true

	if numCopies > 0 {
		if _, err := h.Inventory.Increase(ctx, bookID, numCopies, actorName(c)); err != nil {
			// The title exists but its initial copies failed; surface
			// the book id so the caller can retry the copy creation.
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":   "book created but adding copies failed: " + err.Error(),
				"book_id": bookID,
			})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "book added successfully",
		"book_id":        bookID,
		"copies_created": numCopies,
	})
}

// UpdateBook handles PUT /v1/books/:id. When the body names authors,
// the credited list is replaced wholesale.
func (h *BookHandler) UpdateBook(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	var body bookBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.ISBN) == "" || strings.TrimSpace(body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isbn and title are required"})
	}

	ctx := c.Request().Context()
	if err := h.Books.Update(ctx, body.toModel(bookID)); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update book"})
	}

	if authors := cleanAuthors(body.Authors); len(authors) > 0 {
		tx, err := h.Books.DB().BeginTx(ctx, nil)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		if err := h.Authors.UnlinkBookTx(ctx, tx, bookID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update authors"})
		}
		for _, name := range authors {
			authorID, err := h.Authors.GetOrCreateTx(ctx, tx, name)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update authors"})
			}
			if err := h.Authors.LinkBookTx(ctx, tx, bookID, authorID); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update authors"})
			}
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update authors"})
		}
		committed = true
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "book updated successfully"})
}

// DeleteBook handles DELETE /v1/books/:id. Copies and author links go
// with the book; inventory log rows are preserved with their copy
// back-reference nulled, all in one transaction.
func (h *BookHandler) DeleteBook(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	ctx := c.Request().Context()

	tx, err := h.Books.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.deleteBookTx(c, tx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete book"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete book"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted successfully"})
}

// BulkDeleteBooks handles POST /v1/books/bulk-delete with a JSON body
// of {"ids": [...]}. All books are removed in a single transaction;
// unknown ids are skipped and the response reports the deleted count.
func (h *BookHandler) BulkDeleteBooks(c echo.Context) error {
	var body struct {
		IDs []uint64 `json:"ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no ids provided"})
	}
	ctx := c.Request().Context()

	tx, err := h.Books.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	deleted := 0
	for _, id := range body.IDs {
		if id == 0 {
			continue
		}
		err := h.deleteBookTx(c, tx, id)
		if errors.Is(err, repository.ErrBookNotFound) {
			continue
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete books"})
		}
		deleted++
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no books found to delete"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete books"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "books deleted successfully", "deleted_count": deleted})
}

// deleteBookTx removes one book and its dependents inside tx.
func (h *BookHandler) deleteBookTx(c echo.Context, tx *sql.Tx, bookID uint64) error {
	ctx := c.Request().Context()
	if err := h.Logs.DetachBookTx(ctx, tx, bookID); err != nil {
		return err
	}
	if err := h.Copies.DeleteByBookTx(ctx, tx, bookID); err != nil {
		return err
	}
	if err := h.Authors.UnlinkBookTx(ctx, tx, bookID); err != nil {
		return err
	}
	return h.Books.DeleteTx(ctx, tx, bookID)
}
