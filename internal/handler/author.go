package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/repository"
)

// AuthorHandler exposes read-only author lookups used by dropdowns
// and autocomplete in the catalog UI.
type AuthorHandler struct {
	Authors *repository.AuthorRepo
}

func NewAuthorHandler(authors *repository.AuthorRepo) *AuthorHandler {
	if authors == nil {
		panic("nil repository passed to NewAuthorHandler")
	}
	return &AuthorHandler{Authors: authors}
}

type authorPart struct {
	AuthorID   uint64 `json:"author_id"`
	AuthorName string `json:"author_name"`
}

func toAuthorParts(authors []model.Author) []authorPart {
	out := make([]authorPart, 0, len(authors))
	for _, a := range authors {
		out = append(out, authorPart{AuthorID: a.AuthorID, AuthorName: a.Name})
	}
	return out
}

// ListAuthors handles GET /v1/authors.
func (h *AuthorHandler) ListAuthors(c echo.Context) error {
	authors, err := h.Authors.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch authors"})
	}
	return c.JSON(http.StatusOK, toAuthorParts(authors))
}

// SearchAuthors handles GET /v1/authors/search?q=.
func (h *AuthorHandler) SearchAuthors(c echo.Context) error {
	authors, err := h.Authors.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search authors"})
	}
	return c.JSON(http.StatusOK, toAuthorParts(authors))
}
