package repository // repository for the append-only inventory audit log

import (
	"context"
	"database/sql"

	"github.com/iliyamo/library-inventory/internal/model"
)

// LogRepo writes and detaches inventory_logs rows. Log rows carry a
// snapshot of the copy's book id and barcode so the audit trail stays
// readable after the copy row itself is deleted; only the copy_id
// back-reference is nulled out.
type LogRepo struct {
	db *sql.DB
}

// NewLogRepo constructs a LogRepo given a DB handle.
func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

// InsertTx appends one audit entry within the provided transaction.
// The caller supplies a pre-allocated log id (see UniqueID).
func (r *LogRepo) InsertTx(ctx context.Context, tx *sql.Tx, l *model.InventoryLog) error {
	const q = `INSERT INTO inventory_logs (log_id, copy_id, book_id, barcode, action, performed_by)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, l.LogID, l.CopyID, l.BookID, l.Barcode, l.Action, l.PerformedBy)
	return err
}

// DetachCopyTx nulls the copy back-reference on every log row for the
// given copy. Runs in the same transaction as the copy deletion so a
// foreign-key violation can never be observed.
func (r *LogRepo) DetachCopyTx(ctx context.Context, tx *sql.Tx, copyID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE inventory_logs SET copy_id = NULL WHERE copy_id = ?`, copyID)
	return err
}

// DetachBookTx nulls the copy back-reference on every log row for all
// copies of a book. Used by the cascading book delete; the log rows
// themselves are preserved.
func (r *LogRepo) DetachBookTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE inventory_logs SET copy_id = NULL WHERE book_id = ?`, bookID)
	return err
}
