// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services and handlers to distinguish between failure
// scenarios. For example, ErrBookNotFound maps to an HTTP 404 while
// ErrIDExhausted indicates the bounded identifier-allocation retry
// budget ran out and maps to an HTTP 500.
package repository

import "errors"

// ErrBookNotFound is returned when a book lookup yields no rows.
var ErrBookNotFound = errors.New("book not found")

// ErrCopyNotFound is returned when a copy lookup yields no rows.
var ErrCopyNotFound = errors.New("copy not found")

// ErrStaffNotFound is returned when a staff lookup yields no rows.
var ErrStaffNotFound = errors.New("staff not found")

// ErrEmailExists is returned when an insert would duplicate a unique
// email column. Handlers should translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrIDExhausted is returned when no unique identifier could be
// allocated within the retry budget. The operation must fail loudly;
// callers never swallow this error.
var ErrIDExhausted = errors.New("could not allocate identifier")
