package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/config"
	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/repository"
)

// AccountHandler creates staff and member accounts. Both endpoints are
// admin-facing; member self-registration goes through the kiosk app, not
// this API.
type AccountHandler struct {
	Cfg     config.Config
	Staff   *repository.StaffRepo
	Members *repository.MemberRepo
}

func NewAccountHandler(cfg config.Config, staff *repository.StaffRepo, members *repository.MemberRepo) *AccountHandler {
	if staff == nil || members == nil {
		panic("nil repository passed to NewAccountHandler")
	}
	return &AccountHandler{Cfg: cfg, Staff: staff, Members: members}
}

type createStaffReq struct {
	FullName  string  `json:"full_name"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone_number"`
}

// CreateStaff handles POST /v1/accounts/staff. Accepts either a single
// full_name or first_name/last_name; the role defaults to LIBRARIAN.
func (h *AccountHandler) CreateStaff(c echo.Context) error {
	var req createStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" && last == "" {
		full := strings.TrimSpace(req.FullName)
		if i := strings.LastIndex(full, " "); i > 0 {
			first, last = full[:i], full[i+1:]
		} else {
			first = full
		}
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if first == "" || email == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of at least 8 characters are required"})
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = "LIBRARIAN"
	case "LIBRARIAN", "ADMIN":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be LIBRARIAN or ADMIN"})
	}

	id, err := h.Staff.Create(c.Request().Context(), first, last, email, req.Password, role, req.Phone, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create staff failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"staff_id": id,
		"email":    email,
		"role":     role,
	})
}

type createMemberReq struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	StudentID string  `json:"student_id"`
	Phone     *string `json:"phone_number"`
	NfcUID    *string `json:"nfc_uid"`
}

// CreateMember handles POST /v1/accounts/members.
func (h *AccountHandler) CreateMember(c echo.Context) error {
	var req createMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.StudentID) == "" ||
		len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name, last_name, email, student_id and a password of at least 8 characters are required"})
	}

	m := &model.Member{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       req.Email,
		PhoneNumber: req.Phone,
		StudentID:   strings.TrimSpace(req.StudentID),
		NfcUID:      req.NfcUID,
	}
	memberID, err := h.Members.Create(c.Request().Context(), m, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email or student id already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create member failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"member_id": memberID,
		"email":     strings.ToLower(strings.TrimSpace(req.Email)),
		"status":    "Active",
	})
}
