package order

import (
	"errors"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry")

// HistoryEntry is one row of the append-only status log of an order. The id is
// assigned by storage and orders entries of the same order.
//
// Notes are the only field that may change after insertion, and only on the CHECKING
// entry of an order that is still in CHECKING (see AmendNotes).
type HistoryEntry struct {
	id          uint64
	orderID     kernel.UUID
	status      Status
	description string
	notes       string
	updatedBy   *kernel.UUID
	isFail      bool
	createdAt   time.Time
	photos      []Photo

	isConstructed bool
}

// NewHistoryEntry prepares an entry for insertion. A nil actor marks a system action.
func NewHistoryEntry(orderID kernel.UUID, status Status, actor *kernel.UUID, notes string, isFail bool, now time.Time) (*HistoryEntry, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("updatedBy", err)
		}
	}

	return &HistoryEntry{
		orderID:       orderID,
		status:        status,
		description:   status.Description(),
		notes:         strings.TrimSpace(notes),
		updatedBy:     actor,
		isFail:        isFail,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// HistoryEntryParams carries a persisted history row back into the domain.
type HistoryEntryParams struct {
	ID          uint64
	OrderID     kernel.UUID
	Status      Status
	Description string
	Notes       string
	UpdatedBy   *kernel.UUID
	IsFail      bool
	CreatedAt   time.Time
	Photos      []Photo
}

func RestoreHistoryEntry(p HistoryEntryParams) *HistoryEntry {
	return &HistoryEntry{
		id:            p.ID,
		orderID:       p.OrderID,
		status:        p.Status,
		description:   p.Description,
		notes:         p.Notes,
		updatedBy:     p.UpdatedBy,
		isFail:        p.IsFail,
		createdAt:     p.CreatedAt,
		photos:        append([]Photo(nil), p.Photos...),
		isConstructed: true,
	}
}

func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

func (e *HistoryEntry) ID() uint64 {
	return e.id
}

func (e *HistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *HistoryEntry) Status() Status {
	return e.status
}

func (e *HistoryEntry) Description() string {
	return e.description
}

func (e *HistoryEntry) Notes() string {
	return e.notes
}

func (e *HistoryEntry) UpdatedBy() *kernel.UUID {
	return e.updatedBy
}

func (e *HistoryEntry) IsFail() bool {
	return e.isFail
}

func (e *HistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *HistoryEntry) Photos() []Photo {
	return append([]Photo(nil), e.photos...)
}

func (e *HistoryEntry) HasActor(id kernel.UUID) bool {
	return e.updatedBy != nil && e.updatedBy.IsEqual(id)
}

// AssignID is called by the repository once the row has been inserted.
func (e *HistoryEntry) AssignID(id uint64) {
	e.id = id
}

// AttachPhotos records evidence URLs on the entry. Photos are persisted together with
// the entry, or separately by the repository when amending.
func (e *HistoryEntry) AttachPhotos(urls []string, now time.Time) []Photo {
	added := make([]Photo, 0, len(urls))
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		p := Photo{historyEntryID: e.id, url: url, createdAt: now.UTC()}
		added = append(added, p)
	}
	e.photos = append(e.photos, added...)
	return added
}

// AmendNotes appends text to the notes of an open CHECKING entry. current is the
// order's status at the time of the call; only the actor who wrote the entry may
// amend it.
func (e *HistoryEntry) AmendNotes(current Status, actor kernel.UUID, notes string) error {
	if e.status != Checking || current != Checking {
		return errs.NewInvalidStateError("checking notes", current.String(), Checking.String())
	}
	if !e.HasActor(actor) {
		return errs.NewForbiddenError(actor.String(), "checking entry")
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil
	}
	if e.notes == "" {
		e.notes = notes
	} else {
		e.notes = e.notes + "\n" + notes
	}
	return nil
}

// Photo is an evidence artifact attached to a history entry.
type Photo struct {
	id             uint64
	historyEntryID uint64
	url            string
	createdAt      time.Time
}

func RestorePhoto(id, historyEntryID uint64, url string, createdAt time.Time) Photo {
	return Photo{id: id, historyEntryID: historyEntryID, url: url, createdAt: createdAt}
}

func (p Photo) ID() uint64 {
	return p.id
}

func (p Photo) HistoryEntryID() uint64 {
	return p.historyEntryID
}

func (p Photo) URL() string {
	return p.url
}

func (p Photo) CreatedAt() time.Time {
	return p.createdAt
}

// Statuses extracts the status path of entries already sorted by id.
func Statuses(entries []*HistoryEntry) []Status {
	out := make([]Status, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.status)
	}
	return out
}
