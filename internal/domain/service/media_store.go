package service

import (
	"context"
	"io"

	"lessonboard/internal/domain/entity"
)

// MediaStore is the opaque capability for the remotely hosted lesson
// videos. Implementations talk to a blob provider; the domain only sees
// opaque references.
type MediaStore interface {
	// Put uploads the object and returns a reference to it. The content
	// type is a hint passed through to the provider.
	Put(ctx context.Context, body io.Reader, contentType string) (entity.MediaRef, error)

	// Delete removes the referenced object. Deleting an already-absent
	// object is treated as success, so compensating deletes and racing
	// cleanups stay idempotent.
	Delete(ctx context.Context, ref entity.MediaRef) error
}
