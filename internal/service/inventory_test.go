package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-inventory/internal/queue"
	"github.com/iliyamo/library-inventory/internal/repository"
)

const testBookID = uint64(4821937465)

// newTestService wires an InventoryService against a sqlmock database
// with deterministic id generators and a capturing publisher.
func newTestService(t *testing.T) (*InventoryService, sqlmock.Sqlmock, *[]queue.InventoryChangedEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewInventoryService(db,
		repository.NewBookRepo(db),
		repository.NewCopyRepo(db),
		repository.NewLogRepo(db))

	barcode := uint64(10000000)
	svc.newBarcode = func() uint64 { barcode++; return barcode }
	logID := uint64(1000000000)
	svc.newLogID = func() uint64 { logID++; return logID }

	var events []queue.InventoryChangedEvent
	svc.publish = func(ctx context.Context, ev queue.InventoryChangedEvent) error {
		events = append(events, ev)
		return nil
	}
	return svc, mock, &events
}

func expectLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT book_id FROM books WHERE book_id = \? FOR UPDATE`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}).AddRow(testBookID))
}

// expectNewCopy covers one loop iteration of Increase: a free barcode
// candidate, the copy insert and the paired audit log write.
func expectNewCopy(mock sqlmock.Sqlmock, copyID string) {
	mock.ExpectQuery(`SELECT barcode FROM book_copies WHERE barcode = \?`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO book_copies`).
		WithArgs(copyID, testBookID, sqlmock.AnyArg(), "Available", "New", "Main Shelf").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT log_id FROM inventory_logs WHERE log_id = \?`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO inventory_logs`).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestIncreaseAddsSequentialCopies(t *testing.T) {
	svc, mock, events := newTestService(t)

	mock.ExpectBegin()
	expectLock(mock)
	// Book already holds copies 001..003.
	mock.ExpectQuery(`SELECT MAX`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(3))
	expectNewCopy(mock, "4821937465004")
	expectNewCopy(mock, "4821937465005")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM book_copies`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectCommit()

	total, err := svc.Increase(context.Background(), testBookID, 2, "Librarian")
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, ActionIncrease, ev.Action)
	assert.Equal(t, 2, ev.Quantity)
	assert.Equal(t, 5, ev.NewCopyCount)
	assert.Equal(t, []string{"4821937465004", "4821937465005"}, ev.CopyIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncreaseFirstCopyOfBook(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectBegin()
	expectLock(mock)
	// No copies yet: MAX is NULL and the sequence starts at 001.
	mock.ExpectQuery(`SELECT MAX`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	expectNewCopy(mock, "4821937465001")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM book_copies`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	total, err := svc.Increase(context.Background(), testBookID, 1, "Librarian")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncreaseRejectsNonPositiveQuantity(t *testing.T) {
	svc, mock, events := newTestService(t)

	for _, q := range []int{0, -3} {
		_, err := svc.Increase(context.Background(), testBookID, q, "Librarian")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	// No transaction was ever opened and nothing was published.
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, *events)
}

func TestIncreaseUnknownBookRollsBack(t *testing.T) {
	svc, mock, events := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT book_id FROM books WHERE book_id = \? FOR UPDATE`).
		WithArgs(testBookID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Increase(context.Background(), testBookID, 1, "Librarian")
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	assert.Empty(t, *events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncreaseBarcodeExhaustionRollsBack(t *testing.T) {
	svc, mock, events := newTestService(t)

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(`SELECT MAX`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	// Every candidate barcode is already taken.
	for i := 0; i < 10; i++ {
		mock.ExpectQuery(`SELECT barcode FROM book_copies WHERE barcode = \?`).
			WillReturnRows(sqlmock.NewRows([]string{"barcode"}).AddRow(10000001))
	}
	mock.ExpectRollback()

	_, err := svc.Increase(context.Background(), testBookID, 1, "Librarian")
	assert.ErrorIs(t, err, repository.ErrIDExhausted)
	assert.Empty(t, *events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecreaseRemovesNewestAvailableFirst(t *testing.T) {
	svc, mock, events := newTestService(t)

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(`SELECT copy_id, barcode FROM book_copies`).
		WithArgs(testBookID, 2).
		WillReturnRows(sqlmock.NewRows([]string{"copy_id", "barcode"}).
			AddRow("4821937465005", 10000005).
			AddRow("4821937465004", 10000004))
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT log_id FROM inventory_logs WHERE log_id = \?`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO inventory_logs`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE inventory_logs SET copy_id = NULL WHERE copy_id = \?`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM book_copies WHERE copy_id = \?`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM book_copies`).
		WithArgs(testBookID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	total, err := svc.Decrease(context.Background(), testBookID, 2, "Librarian")
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, ActionDecrease, ev.Action)
	assert.Equal(t, []string{"4821937465005", "4821937465004"}, ev.CopyIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecreaseInsufficientAvailableCopies(t *testing.T) {
	svc, mock, events := newTestService(t)

	mock.ExpectBegin()
	expectLock(mock)
	// Three requested, only one Available.
	mock.ExpectQuery(`SELECT copy_id, barcode FROM book_copies`).
		WithArgs(testBookID, 3).
		WillReturnRows(sqlmock.NewRows([]string{"copy_id", "barcode"}).
			AddRow("4821937465001", 10000001))
	mock.ExpectRollback()

	_, err := svc.Decrease(context.Background(), testBookID, 3, "Librarian")
	require.Error(t, err)

	var insufficient *InsufficientCopiesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 1, insufficient.Available)
	assert.Contains(t, err.Error(), "only 1 available copies found")

	// Nothing was deleted or logged and no event fired.
	assert.Empty(t, *events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecreaseUnknownBook(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT book_id FROM books WHERE book_id = \? FOR UPDATE`).
		WithArgs(testBookID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Decrease(context.Background(), testBookID, 1, "Librarian")
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecreaseRejectsNonPositiveQuantity(t *testing.T) {
	svc, mock, _ := newTestService(t)

	_, err := svc.Decrease(context.Background(), testBookID, 0, "Librarian")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
