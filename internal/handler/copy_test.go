package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-inventory/internal/repository"
	"github.com/iliyamo/library-inventory/internal/service"
)

func sampleTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newCopyTestHandler(t *testing.T) (*BookHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	books := repository.NewBookRepo(db)
	authors := repository.NewAuthorRepo(db)
	copies := repository.NewCopyRepo(db)
	logs := repository.NewLogRepo(db)
	inv := service.NewInventoryService(db, books, copies, logs)
	return NewBookHandler(books, authors, copies, logs, inv), mock
}

func doCopiesRequest(h *BookHandler, method, bookID, body string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/books/:id/copies")
	c.SetParamNames("id")
	c.SetParamValues(bookID)
	_ = fn(c)
	return rec
}

func TestUpdateCopiesRejectsBadAction(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	rec := doCopiesRequest(h, http.MethodPut, "4821937465",
		`{"action":"destroy","quantity":1}`, h.UpdateCopies)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid action")
	// No database work before validation passes.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCopiesRejectsNonPositiveQuantity(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	for _, body := range []string{
		`{"action":"increase","quantity":0}`,
		`{"action":"increase","quantity":-2}`,
		`{"action":"decrease","quantity":0}`,
	} {
		rec := doCopiesRequest(h, http.MethodPut, "4821937465", body, h.UpdateCopies)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "positive")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCopiesQuantityDefaultsToOne(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	// Omitted quantity means one copy; the book does not exist, so the
	// lock probe fails and everything rolls back.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT book_id FROM books WHERE book_id = \? FOR UPDATE`).
		WithArgs(uint64(4821937465)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	rec := doCopiesRequest(h, http.MethodPut, "4821937465",
		`{"action":"increase"}`, h.UpdateCopies)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "book not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCopiesRejectsBadBookID(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	rec := doCopiesRequest(h, http.MethodPut, "not-a-number",
		`{"action":"increase","quantity":1}`, h.UpdateCopies)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCopyCountZeroCopiesIs404(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_copies`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"total_copies", "available_copies", "borrowed_copies", "unavailable_copies"}).
			AddRow(0, 0, 0, 0))

	rec := doCopiesRequest(h, http.MethodGet, "4821937465", "", h.GetCopyCount)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no copies found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCopyCountReturnsStats(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_copies`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"total_copies", "available_copies", "borrowed_copies", "unavailable_copies"}).
			AddRow(5, 3, 1, 1))

	rec := doCopiesRequest(h, http.MethodGet, "4821937465", "", h.GetCopyCount)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"total_copies":5`)
	assert.Contains(t, body, `"available_copies":3`)
	assert.Contains(t, body, `"borrowed_copies":1`)
	assert.Contains(t, body, `"unavailable_copies":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCopiesListsInCreationOrder(t *testing.T) {
	h, mock := newCopyTestHandler(t)

	mock.ExpectQuery(`SELECT book_id FROM books WHERE book_id = \? LIMIT 1`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}).AddRow(4821937465))
	mock.ExpectQuery(`SELECT copy_id, book_id, barcode, status, book_condition, location, date_added`).
		WithArgs(uint64(4821937465)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"copy_id", "book_id", "barcode", "status", "book_condition", "location", "date_added"}).
			AddRow("4821937465001", 4821937465, 11111111, "Available", "New", "Main Shelf", sampleTime()).
			AddRow("4821937465002", 4821937465, 22222222, "Borrowed", "Good", "Main Shelf", sampleTime()))

	rec := doCopiesRequest(h, http.MethodGet, "4821937465", "", h.GetCopies)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"total_copies":2`)
	assert.True(t, strings.Index(body, "4821937465001") < strings.Index(body, "4821937465002"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
