// Package queue defines message payloads exchanged over the message broker.
package queue

// InventoryChangedEvent is published after a copy increase or decrease
// commits. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type InventoryChangedEvent struct {
	BookID       uint64   `json:"book_id"`
	Title        string   `json:"title"`
	Action       string   `json:"action"` // increase | decrease
	Quantity     int      `json:"quantity"`
	NewCopyCount int      `json:"new_copy_count"`
	CopyIDs      []string `json:"copy_ids"`
	PerformedBy  string   `json:"performed_by"`
	OccurredAt   string   `json:"occurred_at"`
}
