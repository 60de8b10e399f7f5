package model

import "time"

// Copy status values.  A copy can only be removed from the ledger
// while it is Available; the other statuses make it immutable to the
// decrease operation.
const (
	CopyStatusAvailable = "Available"
	CopyStatusBorrowed  = "Borrowed"
	CopyStatusLost      = "Lost"
	CopyStatusDamaged   = "Damaged"
)

// Defaults applied to freshly created copies.
const (
	DefaultCopyCondition = "New"
	DefaultCopyLocation  = "Main Shelf"
)

// BookCopy is one physical, loanable unit of a Book as stored in the
// `book_copies` table.  The copy id is the parent book id followed by
// a zero-padded 3-digit sequence (e.g. 1234567890 -> "1234567890001"),
// which keeps copies of a book adjacent when ordered by id.  The
// barcode is a separate 8-digit label, unique across the whole table.
//
// Fields:
//  CopyID    – string primary key, book id + 3-digit suffix.
//  BookID    – parent book identifier.
//  Barcode   – 8-digit physical label.
//  Status    – Available, Borrowed, Lost or Damaged.
//  Condition – physical condition, defaults to "New".
//  Location  – shelf location, defaults to "Main Shelf".
//  DateAdded – timestamp when the copy was created.
type BookCopy struct {
	CopyID    string    // book_copies.copy_id
	BookID    uint64    // book_copies.book_id
	Barcode   uint64    // book_copies.barcode
	Status    string    // book_copies.status
	Condition string    // book_copies.book_condition
	Location  string    // book_copies.location
	DateAdded time.Time // book_copies.date_added
}
