// Package service contains the inventory mutation service: the single
// canonical implementation of copy increase/decrease over the copy
// ledger. Each operation runs inside one database transaction holding
// a row lock on the parent book, so copy-id allocation and the paired
// audit-log writes commit together or not at all.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/library-inventory/internal/model"
	"github.com/iliyamo/library-inventory/internal/queue"
	"github.com/iliyamo/library-inventory/internal/repository"
)

// Inventory actions as they appear in requests and events.
const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// ErrInvalidQuantity is returned when a mutation requests a
// non-positive quantity. Rejected before any database work begins.
var ErrInvalidQuantity = errors.New("quantity must be a positive number")

// InsufficientCopiesError is returned when a decrease asks for more
// copies than are currently Available. The ledger is left untouched;
// the message names both numbers so callers can show e.g. "only 2
// available" instead of a generic failure.
type InsufficientCopiesError struct {
	Requested int
	Available int
}

func (e *InsufficientCopiesError) Error() string {
	return fmt.Sprintf("cannot remove %d copies: only %d available copies found (Borrowed, Lost or Damaged copies cannot be removed)",
		e.Requested, e.Available)
}

// InventoryService orchestrates copy ledger mutations. It is
// stateless; all state lives in the database.
type InventoryService struct {
	db     *sql.DB
	books  *repository.BookRepo
	copies *repository.CopyRepo
	logs   *repository.LogRepo

	// Identifier generators and the event publisher are fields so
	// tests can substitute deterministic versions.
	newBarcode func() uint64
	newLogID   func() uint64
	publish    func(ctx context.Context, ev queue.InventoryChangedEvent) error
}

// NewInventoryService constructs an InventoryService. All repository
// dependencies must be non-nil.
func NewInventoryService(db *sql.DB, books *repository.BookRepo, copies *repository.CopyRepo, logs *repository.LogRepo) *InventoryService {
	if db == nil || books == nil || copies == nil || logs == nil {
		panic("nil dependency passed to NewInventoryService")
	}
	return &InventoryService{
		db:         db,
		books:      books,
		copies:     copies,
		logs:       logs,
		newBarcode: repository.RandomBarcode,
		newLogID:   repository.RandomLogID,
		publish:    PublishInventoryChanged,
	}
}

// Increase adds quantity new copies to a book and returns the new
// total copy count. Copy ids continue the book's zero-padded sequence;
// the next suffix is read under the book row lock so concurrent
// increases serialize instead of colliding.
func (s *InventoryService) Increase(ctx context.Context, bookID uint64, quantity int, actor string) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.books.LockTx(ctx, tx, bookID); err != nil {
		return 0, err
	}
	maxSuffix, err := s.copies.MaxSuffixTx(ctx, tx, bookID)
	if err != nil {
		return 0, err
	}

	created := make([]string, 0, quantity)
	seq := maxSuffix + 1
	for i := 0; i < quantity; i++ {
		copyID := repository.FormatCopyID(bookID, seq)
		barcode, err := repository.UniqueID(ctx, tx, s.newBarcode, "book_copies", "barcode")
		if err != nil {
			return 0, err
		}
		if err := s.copies.InsertTx(ctx, tx, &model.BookCopy{
			CopyID:    copyID,
			BookID:    bookID,
			Barcode:   barcode,
			Status:    model.CopyStatusAvailable,
			Condition: model.DefaultCopyCondition,
			Location:  model.DefaultCopyLocation,
		}); err != nil {
			return 0, err
		}
		if err := s.appendLogTx(ctx, tx, copyID, bookID, barcode, model.LogActionAdded, actor); err != nil {
			return 0, err
		}
		created = append(created, copyID)
		seq++
	}

	total, err := s.copies.CountByBookTx(ctx, tx, bookID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	s.publishEvent(ctx, bookID, ActionIncrease, quantity, total, created, actor)
	return total, nil
}

// Decrease removes quantity Available copies from a book, most
// recently added first, and returns the new total copy count. When
// fewer than quantity copies are Available it fails with
// *InsufficientCopiesError and performs no partial removal.
func (s *InventoryService) Decrease(ctx context.Context, bookID uint64, quantity int, actor string) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.books.LockTx(ctx, tx, bookID); err != nil {
		return 0, err
	}
	candidates, err := s.copies.AvailableForRemovalTx(ctx, tx, bookID, quantity)
	if err != nil {
		return 0, err
	}
	if len(candidates) < quantity {
		// The LIMIT equals the requested quantity, so a short result
		// is the exact Available count.
		return 0, &InsufficientCopiesError{Requested: quantity, Available: len(candidates)}
	}

	removed := make([]string, 0, quantity)
	for _, c := range candidates {
		if err := s.appendLogTx(ctx, tx, c.CopyID, bookID, c.Barcode, model.LogActionRemoved, actor); err != nil {
			return 0, err
		}
		// Detach every log row for this copy (including the one just
		// written) before deleting it; the snapshot columns keep the
		// history readable.
		if err := s.logs.DetachCopyTx(ctx, tx, c.CopyID); err != nil {
			return 0, err
		}
		if err := s.copies.DeleteTx(ctx, tx, c.CopyID); err != nil {
			return 0, err
		}
		removed = append(removed, c.CopyID)
	}

	total, err := s.copies.CountByBookTx(ctx, tx, bookID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	if total == 0 {
		log.Printf("warning: book %d now has 0 copies", bookID)
	}
	s.publishEvent(ctx, bookID, ActionDecrease, quantity, total, removed, actor)
	return total, nil
}

// appendLogTx allocates a log id and writes one audit entry.
func (s *InventoryService) appendLogTx(ctx context.Context, tx *sql.Tx, copyID string, bookID, barcode uint64, action, actor string) error {
	logID, err := repository.UniqueID(ctx, tx, s.newLogID, "inventory_logs", "log_id")
	if err != nil {
		return err
	}
	cid := copyID
	return s.logs.InsertTx(ctx, tx, &model.InventoryLog{
		LogID:       logID,
		CopyID:      &cid,
		BookID:      bookID,
		Barcode:     barcode,
		Action:      action,
		PerformedBy: actor,
	})
}

// publishEvent emits an InventoryChangedEvent after commit. Broker
// failures are logged inside the publisher and otherwise ignored; the
// mutation already committed.
func (s *InventoryService) publishEvent(ctx context.Context, bookID uint64, action string, quantity, total int, copyIDs []string, actor string) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.InventoryChangedEvent{
		BookID:       bookID,
		Action:       action,
		Quantity:     quantity,
		NewCopyCount: total,
		CopyIDs:      copyIDs,
		PerformedBy:  actor,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
