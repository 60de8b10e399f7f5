package model

import "time"

// Member represents a library member (a student) as stored in the
// `members` table.  Member ids are strings with an "M" prefix so they
// are visually distinct from staff ids on printed cards.
//
// Fields:
//  MemberID     – string primary key, "M" + epoch millis.
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – contact email.
//  PhoneNumber  – optional contact number.
//  StudentID    – school-issued student identifier.
//  NfcUID       – optional NFC card uid.
//  Status       – Active, Suspended or Expired.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Member struct {
	MemberID     string    // members.member_id
	FirstName    string    // members.first_name
	LastName     string    // members.last_name
	Email        string    // members.email
	PhoneNumber  *string   // members.phone_number
	StudentID    string    // members.student_id
	NfcUID       *string   // members.nfc_uid
	Status       string    // members.status
	PasswordHash string    // members.password_hash
	CreatedAt    time.Time // members.created_at
}
