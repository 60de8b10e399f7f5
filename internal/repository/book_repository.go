package repository // repository defines data access for catalog books

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/library-inventory/internal/model"
)

// BookRepo provides methods to work with books in the database.
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo constructs a BookRepo with the given DB handle.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *BookRepo) DB() *sql.DB { return r.db }

// BookListItem is one row of the paginated catalog listing. Quantity
// is the live count of copy rows, never a cached counter.
type BookListItem struct {
	BookID       uint64  `json:"book_id"`
	Title        string  `json:"title"`
	CategoryName *string `json:"category_name"`
	Language     string  `json:"language"`
	Quantity     int     `json:"quantity"`
	DateAdded    string  `json:"date_added"`
}

// CopyStats aggregates copy counts for a book by status at query time.
type CopyStats struct {
	Total       int `json:"total_copies"`
	Available   int `json:"available_copies"`
	Borrowed    int `json:"borrowed_copies"`
	Unavailable int `json:"unavailable_copies"`
}

// CreateTx inserts a book row with a pre-allocated book_id within the
// provided transaction. The caller must commit or roll back.
func (r *BookRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Book) error {
	const q = `INSERT INTO books
	             (book_id, isbn, title, subtitle, description, publisher,
	              publication_year, edition, category_id, language)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q,
		b.BookID, b.ISBN, b.Title, b.Subtitle, b.Description, b.Publisher,
		b.PublicationYear, b.Edition, b.CategoryID, b.Language)
	return err
}

// LockTx takes a row lock on the book inside the given transaction.
// Every multi-step copy mutation for a book starts here so that
// concurrent increases/decreases on the same book serialize instead of
// racing on "read max suffix, then insert". Returns ErrBookNotFound
// when the book does not exist.
func (r *BookRepo) LockTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx,
		`SELECT book_id FROM books WHERE book_id = ? FOR UPDATE`, bookID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	return err
}

// List retrieves a page of the catalog filtered by a title substring,
// newest first, together with the unpaginated total.
func (r *BookRepo) List(ctx context.Context, limit, offset int, search string) ([]BookListItem, int, error) {
	const q = `SELECT b.book_id, b.title, c.category_name, b.language,
	                  COUNT(bc.copy_id) AS quantity, b.date_added
	           FROM books b
	           LEFT JOIN categories c ON b.category_id = c.category_id
	           LEFT JOIN book_copies bc ON b.book_id = bc.book_id
	           WHERE b.title LIKE ?
	           GROUP BY b.book_id, b.title, c.category_name, b.language, b.date_added
	           ORDER BY b.date_added DESC
	           LIMIT ? OFFSET ?`
	pattern := "%" + search + "%"
	rows, err := r.db.QueryContext(ctx, q, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []BookListItem
	for rows.Next() {
		var it BookListItem
		if err := rows.Scan(&it.BookID, &it.Title, &it.CategoryName, &it.Language, &it.Quantity, &it.DateAdded); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books b WHERE b.title LIKE ?`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// BookDetail joins a book with its category for the detail endpoint.
type BookDetail struct {
	model.Book
	CategoryName *string
	CategoryType *string
}

// GetByID retrieves a single book with category info.
func (r *BookRepo) GetByID(ctx context.Context, bookID uint64) (*BookDetail, error) {
	const q = `SELECT b.book_id, b.isbn, b.title, b.subtitle, b.description,
	                  b.publisher, b.publication_year, b.edition, b.language,
	                  b.category_id, b.date_added, c.category_name, c.category_type
	           FROM books b
	           LEFT JOIN categories c ON b.category_id = c.category_id
	           WHERE b.book_id = ?`
	var d BookDetail
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(
		&d.BookID, &d.ISBN, &d.Title, &d.Subtitle, &d.Description,
		&d.Publisher, &d.PublicationYear, &d.Edition, &d.Language,
		&d.CategoryID, &d.DateAdded, &d.CategoryName, &d.CategoryType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Exists reports whether a book row is present.
func (r *BookRepo) Exists(ctx context.Context, bookID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT book_id FROM books WHERE book_id = ? LIMIT 1`, bookID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites the mutable metadata of a book. Returns
// ErrBookNotFound when no row matched.
func (r *BookRepo) Update(ctx context.Context, b *model.Book) error {
	const q = `UPDATE books
	           SET isbn = ?, title = ?, subtitle = ?, description = ?, publisher = ?,
	               publication_year = ?, edition = ?, category_id = ?, language = ?
	           WHERE book_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		b.ISBN, b.Title, b.Subtitle, b.Description, b.Publisher,
		b.PublicationYear, b.Edition, b.CategoryID, b.Language, b.BookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteTx removes the book row itself. Dependent rows (copies, logs,
// author links) are handled by the caller in the same transaction.
// Returns ErrBookNotFound when no row matched.
func (r *BookRepo) DeleteTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE book_id = ?`, bookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// CopyStats returns live copy counts for a book grouped by status.
func (r *BookRepo) CopyStats(ctx context.Context, bookID uint64) (CopyStats, error) {
	const q = `SELECT COUNT(*) AS total_copies,
	                  COALESCE(SUM(CASE WHEN status = 'Available' THEN 1 ELSE 0 END), 0) AS available_copies,
	                  COALESCE(SUM(CASE WHEN status = 'Borrowed' THEN 1 ELSE 0 END), 0) AS borrowed_copies,
	                  COALESCE(SUM(CASE WHEN status IN ('Lost', 'Damaged') THEN 1 ELSE 0 END), 0) AS unavailable_copies
	           FROM book_copies
	           WHERE book_id = ?`
	var s CopyStats
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&s.Total, &s.Available, &s.Borrowed, &s.Unavailable)
	return s, err
}
