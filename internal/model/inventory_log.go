package model

import "time"

// Inventory log actions.
const (
	LogActionAdded   = "Added"
	LogActionRemoved = "Removed"
)

// InventoryLog is an append-only audit record of a copy entering or
// leaving the ledger, stored in the `inventory_logs` table.  BookID
// and Barcode are denormalized snapshots so the history remains
// meaningful after the copy row is deleted; CopyID is nullable and is
// set to NULL inside the same transaction that deletes the copy.
//
// Fields:
//  LogID       – 10-digit primary key identifier.
//  CopyID      – back-reference to the copy, nil once the copy is gone.
//  BookID      – book the copy belonged to at log time.
//  Barcode     – barcode the copy carried at log time.
//  Action      – Added or Removed.
//  PerformedBy – actor recorded for the mutation.
//  Timestamp   – when the action happened.
type InventoryLog struct {
	LogID       uint64    // inventory_logs.log_id
	CopyID      *string   // inventory_logs.copy_id
	BookID      uint64    // inventory_logs.book_id
	Barcode     uint64    // inventory_logs.barcode
	Action      string    // inventory_logs.action
	PerformedBy string    // inventory_logs.performed_by
	Timestamp   time.Time // inventory_logs.log_timestamp
}
