package repository // repository defines data access for authors

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/library-inventory/internal/model"
)

// AuthorRepo provides methods to work with authors and the
// book_authors join table.
type AuthorRepo struct {
	db *sql.DB
}

// NewAuthorRepo constructs an AuthorRepo with the given DB handle.
func NewAuthorRepo(db *sql.DB) *AuthorRepo {
	return &AuthorRepo{db: db}
}

// List retrieves all authors ordered by name, for dropdowns.
func (r *AuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	const q = `SELECT author_id, name, biography FROM authors ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuthors(rows)
}

// Search retrieves authors whose name contains the given substring,
// for autocomplete.
func (r *AuthorRepo) Search(ctx context.Context, name string) ([]model.Author, error) {
	const q = `SELECT author_id, name, biography FROM authors WHERE name LIKE ? ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q, "%"+name+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuthors(rows)
}

func scanAuthors(rows *sql.Rows) ([]model.Author, error) {
	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.AuthorID, &a.Name, &a.Biography); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// NamesByBook returns the author names credited on a book.
func (r *AuthorRepo) NamesByBook(ctx context.Context, bookID uint64) ([]string, error) {
	const q = `SELECT a.name
	           FROM authors a
	           INNER JOIN book_authors ba ON a.author_id = ba.author_id
	           WHERE ba.book_id = ?`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// GetOrCreateTx looks an author up by exact name, creating the row on
// first reference. Returns the author id either way.
func (r *AuthorRepo) GetOrCreateTx(ctx context.Context, tx *sql.Tx, name string) (uint64, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		`SELECT author_id FROM authors WHERE name = ? LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO authors (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// LinkBookTx associates an author with a book.
func (r *AuthorRepo) LinkBookTx(ctx context.Context, tx *sql.Tx, bookID, authorID uint64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO book_authors (book_id, author_id) VALUES (?, ?)`, bookID, authorID)
	return err
}

// UnlinkBookTx removes all author associations of a book, used when
// an update replaces the credited author list or a book is deleted.
func (r *AuthorRepo) UnlinkBookTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM book_authors WHERE book_id = ?`, bookID)
	return err
}
