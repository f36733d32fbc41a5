package services

import (
	"sort"
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// QueueItem is the part of an order the work queue sorts on.
type QueueItem struct {
	OrderID   kernel.UUID
	Emergency bool
	PlacedAt  time.Time
}

// WorkQueue puts emergency orders first, then the oldest placement first. The
// emergency flag affects ordering only, never which transitions are legal.
type WorkQueue struct{}

func NewWorkQueue() WorkQueue {
	return WorkQueue{}
}

// Sort orders items in place and returns them.
func (WorkQueue) Sort(items []QueueItem) []QueueItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Emergency != items[j].Emergency {
			return items[i].Emergency
		}
		return items[i].PlacedAt.Before(items[j].PlacedAt)
	})
	return items
}
