package repository // repository for physical book copy persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/library-inventory/internal/model"
)

// CopyRepo encapsulates database operations for book_copies. Copy ids
// follow the sequential policy: the parent book id concatenated with a
// zero-padded 3-digit suffix. Allocation of the next suffix must
// happen under the book row lock (BookRepo.LockTx) so two concurrent
// increases cannot compute the same sequence number.
type CopyRepo struct {
	db *sql.DB
}

// NewCopyRepo constructs a CopyRepo given a DB handle.
func NewCopyRepo(db *sql.DB) *CopyRepo {
	return &CopyRepo{db: db}
}

// FormatCopyID builds a copy identifier from a book id and a 1-based
// sequence number, e.g. (1234567890, 7) -> "1234567890007".
func FormatCopyID(bookID uint64, seq int) string {
	return fmt.Sprintf("%d%03d", bookID, seq)
}

// MaxSuffixTx returns the highest existing copy-id suffix for a book,
// or zero when the book has no copies. Must run inside the same
// transaction that holds the book row lock.
func (r *CopyRepo) MaxSuffixTx(ctx context.Context, tx *sql.Tx, bookID uint64) (int, error) {
	const q = `SELECT MAX(CAST(RIGHT(copy_id, 3) AS UNSIGNED))
	           FROM book_copies
	           WHERE book_id = ?`
	var max sql.NullInt64
	if err := tx.QueryRowContext(ctx, q, bookID).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

// InsertTx inserts a copy row within the provided transaction. The
// caller supplies copy id and barcode; status, condition and location
// default at the model layer, not in the database.
func (r *CopyRepo) InsertTx(ctx context.Context, tx *sql.Tx, c *model.BookCopy) error {
	const q = `INSERT INTO book_copies (copy_id, book_id, barcode, status, book_condition, location)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, c.CopyID, c.BookID, c.Barcode, c.Status, c.Condition, c.Location)
	return err
}

// RemovalCandidate is the slice of a copy row needed to remove it and
// write its audit log: the id plus the snapshotted barcode.
type RemovalCandidate struct {
	CopyID  string
	Barcode uint64
}

// AvailableForRemovalTx selects up to limit Available copies of a
// book, most recently added first (copy id descending), locking the
// rows for the remainder of the transaction. Copies in any other
// status are never returned; they are immutable to the decrease
// operation. When the book has fewer than limit Available copies the
// returned slice is shorter, which callers use to report the actual
// available count.
func (r *CopyRepo) AvailableForRemovalTx(ctx context.Context, tx *sql.Tx, bookID uint64, limit int) ([]RemovalCandidate, error) {
	const q = `SELECT copy_id, barcode FROM book_copies
	           WHERE book_id = ? AND status = 'Available'
	           ORDER BY copy_id DESC
	           LIMIT ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, bookID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RemovalCandidate
	for rows.Next() {
		var c RemovalCandidate
		if err := rows.Scan(&c.CopyID, &c.Barcode); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTx removes a single copy row within the transaction.
func (r *CopyRepo) DeleteTx(ctx context.Context, tx *sql.Tx, copyID string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM book_copies WHERE copy_id = ?`, copyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCopyNotFound
	}
	return nil
}

// DeleteByBookTx removes all copies of a book. Used by the cascading
// book delete after logs have been detached.
func (r *CopyRepo) DeleteByBookTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM book_copies WHERE book_id = ?`, bookID)
	return err
}

// CountByBookTx returns the number of copy rows for a book inside the
// transaction, so a mutation can report the post-commit total it is
// about to make visible.
func (r *CopyRepo) CountByBookTx(ctx context.Context, tx *sql.Tx, bookID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM book_copies WHERE book_id = ?`, bookID).Scan(&n)
	return n, err
}

// ListByBook retrieves all copies of a book ordered by copy id
// ascending, which with the sequential id policy is creation order.
func (r *CopyRepo) ListByBook(ctx context.Context, bookID uint64) ([]model.BookCopy, error) {
	const q = `SELECT copy_id, book_id, barcode, status, book_condition, location, date_added
	           FROM book_copies
	           WHERE book_id = ?
	           ORDER BY copy_id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var copies []model.BookCopy
	for rows.Next() {
		var c model.BookCopy
		if err := rows.Scan(&c.CopyID, &c.BookID, &c.Barcode, &c.Status, &c.Condition, &c.Location, &c.DateAdded); err != nil {
			return nil, err
		}
		copies = append(copies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return copies, nil
}
