// Package order provides the Order aggregate of the laundry pipeline and its status
// log.
//
// The package includes:
//   - Order: the aggregate root holding cart lines, placement details and the current status
//   - Status: the fixed transition graph, kept as one table in status.go
//   - HistoryEntry and Photo: the append-only status log and its evidence
//
// Key business rules:
//   - Cart lines change only while the order is INCART
//   - Every status change follows the transition table; there is no other legality check
//   - The latest history entry always carries the order's current status
//   - History entries are never edited, except the notes of the open CHECKING entry,
//     and only by the staff member who opened it
package order
