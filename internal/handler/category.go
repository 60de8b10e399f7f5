package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/repository"
)

// CategoryHandler serves category reference data.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	if categories == nil {
		panic("nil repository passed to NewCategoryHandler")
	}
	return &CategoryHandler{Categories: categories}
}

// ListCategories handles GET /v1/categories.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	cats, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch categories"})
	}
	out := make([]echo.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, echo.Map{
			"category_id":   cat.CategoryID,
			"category_name": cat.CategoryName,
			"category_type": cat.CategoryType,
		})
	}
	return c.JSON(http.StatusOK, out)
}
