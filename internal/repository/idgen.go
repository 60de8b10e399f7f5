package repository // identifier generation with verify-and-retry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Querier is the subset of database operations needed for existence
// checks. Both *sql.DB and *sql.Tx satisfy it, so identifier
// allocation can participate in an enclosing transaction.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// maxIDAttempts bounds the generate-check-retry loop. Collisions in a
// 10-digit space are rare but not impossible, so every candidate is
// verified before use.
const maxIDAttempts = 10

// RandomBookID returns a candidate 10-digit book identifier.
func RandomBookID() uint64 { return 1000000000 + rand.Uint64N(9000000000) }

// RandomLogID returns a candidate 10-digit inventory-log identifier.
func RandomLogID() uint64 { return 1000000000 + rand.Uint64N(9000000000) }

// RandomBarcode returns a candidate 8-digit copy barcode.
func RandomBarcode() uint64 { return 10000000 + rand.Uint64N(90000000) }

// UniqueID draws candidates from gen until one is absent from
// table.column, checking each candidate with a parameterized query.
// After maxIDAttempts failed candidates it gives up with
// ErrIDExhausted. The table and column names are compile-time
// constants at every call site, never user input.
func UniqueID(ctx context.Context, q Querier, gen func() uint64, table, column string) (uint64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1", column, table, column)
	for i := 0; i < maxIDAttempts; i++ {
		id := gen()
		var existing uint64
		err := q.QueryRowContext(ctx, query, id).Scan(&existing)
		if errors.Is(err, sql.ErrNoRows) {
			return id, nil
		}
		if err != nil {
			return 0, err
		}
		// Candidate already taken; draw again.
	}
	return 0, fmt.Errorf("%w: %s.%s after %d attempts", ErrIDExhausted, table, column, maxIDAttempts)
}
