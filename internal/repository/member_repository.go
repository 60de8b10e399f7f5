package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/utils"
)

// MemberRepo provides data access for member accounts.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

// Create hashes the password, generates an "M"-prefixed member id and
// inserts the member row. Returns the generated id.
func (r *MemberRepo) Create(ctx context.Context, m *model.Member, password string, cost int) (string, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	memberID := fmt.Sprintf("M%d", time.Now().UnixMilli())
	status := m.Status
	if status == "" {
		status = "Active"
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO members (member_id, first_name, last_name, email, phone_number, student_id, nfc_uid, status, password_hash) VALUES (?,?,?,?,?,?,?,?,?)",
		memberID, m.FirstName, m.LastName, strings.ToLower(strings.TrimSpace(m.Email)),
		m.PhoneNumber, m.StudentID, m.NfcUID, status, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return memberID, nil
}
