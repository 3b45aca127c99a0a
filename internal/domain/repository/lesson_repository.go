package repository

import (
	"context"
	"errors"

	"lessonboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLessonNotFound is returned when a lesson record is absent. Update and
// delete return it as well when a concurrent racer already removed the
// record; callers must not assume they win such races.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepository defines the standard operations for lesson persistence.
type LessonRepository interface {
	// Create persists a new lesson and fills in its generated ID.
	Create(ctx context.Context, lesson *entity.Lesson) error

	// FindByID retrieves a single lesson by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)

	// List returns all lessons, newest first.
	List(ctx context.Context) ([]*entity.Lesson, error)

	// Update overwrites title, body and media reference of an existing
	// lesson in a single durable write. Returns ErrLessonNotFound when
	// the record no longer exists.
	Update(ctx context.Context, lesson *entity.Lesson) error

	// Delete removes the lesson record. Returns ErrLessonNotFound when
	// the record no longer exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearMedia empties the media reference of a lesson in one durable
	// update, leaving title and body untouched.
	ClearMedia(ctx context.Context, id uuid.UUID) error
}
