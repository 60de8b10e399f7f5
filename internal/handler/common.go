package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getStaffID extracts the staff id from echo.Context and converts it
// to uint64. JWTAuth stores the subject claim under "user_id"; the
// JSON number round-trips as float64.
func getStaffID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// actorName returns the display name recorded in inventory logs for
// the current request. Falls back to the generic role label when the
// token carries no email claim.
func actorName(c echo.Context) string {
	if v, ok := c.Get("email").(string); ok && v != "" {
		return v
	}
	return "Librarian"
}
