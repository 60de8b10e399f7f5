package model

import (
	"database/sql"
	"time"
)

// Staff represents a library staff account as stored in the `staff`
// table.  Staff members authenticate with email and password and
// carry a role that middleware uses to gate mutating endpoints.
//
// Fields:
//  StaffID      – primary key identifier.
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – unique email address used for login.
//  Username     – derived from the email local part.
//  PhoneNumber  – optional contact number.
//  PasswordHash – bcrypt hashed password.
//  Role         – LIBRARIAN or ADMIN.
//  LastLogin    – last successful login, NULL before first login.
//  CreatedAt    – timestamp of creation.
type Staff struct {
	StaffID      uint64       // staff.staff_id
	FirstName    string       // staff.first_name
	LastName     string       // staff.last_name
	Email        string       // staff.email
	Username     string       // staff.username
	PhoneNumber  *string      // staff.phone_number
	PasswordHash string       // staff.password_hash
	Role         string       // staff.role
	LastLogin    sql.NullTime // staff.last_login
	CreatedAt    time.Time    // staff.created_at
}
