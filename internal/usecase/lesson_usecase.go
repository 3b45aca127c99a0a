package usecase

import (
	"context"
	"io"

	"lessonboard/internal/domain/entity"

	"github.com/google/uuid"
)

// MediaUpload is an incoming video attachment. Content is streamed to the
// media store; the use case never buffers it past the upload call.
type MediaUpload struct {
	Content     io.Reader
	ContentType string
	Filename    string
}

// --- Input DTOs ---

// CreateLessonInput defines the data required to publish a new lesson.
type CreateLessonInput struct {
	AuthorID uuid.UUID
	Title    string
	Body     string
	Upload   *MediaUpload // nil when no video is attached
}

// UpdateLessonInput defines the data required to edit an existing lesson.
type UpdateLessonInput struct {
	CallerID uuid.UUID
	LessonID uuid.UUID
	Title    string
	Body     string
	Upload   *MediaUpload // nil keeps the current video
}

// --- Output DTOs ---

// LessonOutput returns a lesson together with its author's display name.
type LessonOutput struct {
	Lesson     *entity.Lesson
	AuthorName string
}

// LessonUsecase manages the lesson lifecycle. All mutating operations
// require the caller to be the lesson's author; reads are public.
type LessonUsecase interface {
	Create(ctx context.Context, input *CreateLessonInput) (*entity.Lesson, error)
	Get(ctx context.Context, lessonID uuid.UUID) (*LessonOutput, error)
	List(ctx context.Context) ([]*entity.Lesson, error)
	Update(ctx context.Context, input *UpdateLessonInput) (*entity.Lesson, error)
	Delete(ctx context.Context, callerID, lessonID uuid.UUID) error
	DeleteMedia(ctx context.Context, callerID, lessonID uuid.UUID) error
}
