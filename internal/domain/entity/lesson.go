package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaRef points at a video object held by the remote media store.
// Both fields are empty when the lesson has no attached video.
type MediaRef struct {
	Key        string // Opaque object key inside the provider's bucket.
	ProviderID string // Identifies which configured store holds the object.
}

// Attached reports whether the reference points at a stored object.
func (m MediaRef) Attached() bool {
	return m.Key != ""
}

// Lesson is a published lesson item. It is owned by its author: only the
// author may update or delete it, while reads are public.
//
// Invariant: whenever Media.Attached() is true, the referenced object
// exists at the media store. The lesson service keeps this consistent
// through ordered writes and compensating deletes.
type Lesson struct {
	ID        uuid.UUID
	Title     string
	Body      string
	AuthorID  uuid.UUID // Immutable after creation; ownership never transfers.
	Media     MediaRef
	CreatedAt time.Time
	UpdatedAt time.Time
}
