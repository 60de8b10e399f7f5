package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/utils"
)

// StaffRepo provides data access for staff accounts and their login
// history.
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

// Create hashes the password and inserts a staff row. The username is
// derived from the email local part. Returns the new staff id.
func (r *StaffRepo) Create(ctx context.Context, firstName, lastName, email, password, role string, phone *string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO staff (first_name, last_name, email, username, phone_number, password_hash, role) VALUES (?,?,?,?,?,?,?)",
		firstName, lastName, email, username, phone, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a staff member by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var s model.Staff
	err := r.DB.QueryRowContext(ctx,
		"SELECT staff_id,first_name,last_name,email,username,phone_number,password_hash,role,last_login,created_at FROM staff WHERE email=? LIMIT 1",
		email).Scan(&s.StaffID, &s.FirstName, &s.LastName, &s.Email, &s.Username, &s.PhoneNumber, &s.PasswordHash, &s.Role, &s.LastLogin, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrStaffNotFound
	}
	return s, err
}

// GetByID fetches a staff member by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
	var s model.Staff
	err := r.DB.QueryRowContext(ctx,
		"SELECT staff_id,first_name,last_name,email,username,phone_number,password_hash,role,last_login,created_at FROM staff WHERE staff_id=? LIMIT 1",
		id).Scan(&s.StaffID, &s.FirstName, &s.LastName, &s.Email, &s.Username, &s.PhoneNumber, &s.PasswordHash, &s.Role, &s.LastLogin, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrStaffNotFound
	}
	return s, err
}

// TouchLastLogin stamps a successful login.
func (r *StaffRepo) TouchLastLogin(ctx context.Context, staffID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE staff SET last_login = NOW() WHERE staff_id = ?", staffID)
	return err
}

// RecordLogin appends a login_history row. The history id is a
// pre-allocated 10-digit identifier from UniqueID.
func (r *StaffRepo) RecordLogin(ctx context.Context, historyID, staffID uint64, ip string, userAgent *string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_history (history_id, staff_id, ip_address, user_agent) VALUES (?,?,?,?)",
		historyID, staffID, ip, userAgent)
	return err
}
