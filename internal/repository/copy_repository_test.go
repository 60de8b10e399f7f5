package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCopyID(t *testing.T) {
	assert.Equal(t, "4821937465001", FormatCopyID(4821937465, 1))
	assert.Equal(t, "4821937465007", FormatCopyID(4821937465, 7))
	assert.Equal(t, "4821937465123", FormatCopyID(4821937465, 123))
}

func TestMaxSuffixTxEmptyBook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// MAX over zero rows comes back as NULL.
	mock.ExpectQuery(`SELECT MAX`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	tx, err := db.Begin()
	require.NoError(t, err)

	max, err := NewCopyRepo(db).MaxSuffixTx(context.Background(), tx, 4821937465)
	require.NoError(t, err)
	assert.Equal(t, 0, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaxSuffixTxExistingCopies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT MAX`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))

	tx, err := db.Begin()
	require.NoError(t, err)

	max, err := NewCopyRepo(db).MaxSuffixTx(context.Background(), tx, 4821937465)
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestAvailableForRemovalTxShortResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// Only two Available copies exist even though three were asked for.
	mock.ExpectQuery(`SELECT copy_id, barcode FROM book_copies`).
		WithArgs(uint64(4821937465), 3).
		WillReturnRows(sqlmock.NewRows([]string{"copy_id", "barcode"}).
			AddRow("4821937465003", 33333333).
			AddRow("4821937465001", 11111111))

	tx, err := db.Begin()
	require.NoError(t, err)

	got, err := NewCopyRepo(db).AvailableForRemovalTx(context.Background(), tx, 4821937465, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Most recently added first.
	assert.Equal(t, "4821937465003", got[0].CopyID)
	assert.Equal(t, uint64(33333333), got[0].Barcode)
	assert.Equal(t, "4821937465001", got[1].CopyID)
}

func TestDeleteTxMissingCopy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM book_copies WHERE copy_id = \?`).
		WithArgs("4821937465001").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	err = NewCopyRepo(db).DeleteTx(context.Background(), tx, "4821937465001")
	assert.ErrorIs(t, err, ErrCopyNotFound)
}
