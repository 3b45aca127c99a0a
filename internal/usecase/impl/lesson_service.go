package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "lessonboard/internal/delivery/context"
	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	"lessonboard/internal/domain/service"
	"lessonboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// lessonService implements the LessonUsecase interface. Media and record
// writes span two stores with no shared transaction, so every path that
// touches both follows a fixed order with an explicit compensating delete
// on partial failure:
//
//   - create/update: store the new object first, commit the record, and
//     only then remove a superseded object. A failed record write deletes
//     the object that was just stored.
//   - delete: remove the record first, then clean up the object best
//     effort. A failed remote cleanup is logged, never surfaced; a
//     dangling object is a lesser harm than a record pointing at nothing.
type lessonService struct {
	lessonRepo repository.LessonRepository
	userRepo   repository.UserRepository
	mediaStore service.MediaStore
	logger     *slog.Logger
}

// LessonServiceParams holds dependencies for lessonService, injected by Fx.
type LessonServiceParams struct {
	fx.In

	LessonRepo repository.LessonRepository
	UserRepo   repository.UserRepository
	MediaStore service.MediaStore
	Logger     *slog.Logger
}

// NewLessonService is the constructor for lessonService.
func NewLessonService(params LessonServiceParams) usecase.LessonUsecase {
	return &lessonService{
		lessonRepo: params.LessonRepo,
		userRepo:   params.UserRepo,
		mediaStore: params.MediaStore,
		logger:     params.Logger,
	}
}

func (srv *lessonService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create publishes a new lesson. When a video is attached it is stored
// before the record is written; if the record write then fails the
// just-stored object is deleted so no orphan survives the call.
func (srv *lessonService) Create(ctx context.Context, input *usecase.CreateLessonInput) (*entity.Lesson, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title and body are required")
	}

	lesson := &entity.Lesson{
		Title:    title,
		Body:     body,
		AuthorID: input.AuthorID,
	}

	if input.Upload != nil {
		ref, err := srv.mediaStore.Put(ctx, input.Upload.Content, input.Upload.ContentType)
		if err != nil {
			srv.log(ctx).Error("Failed to store lesson video", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrMediaStoreFailed, "failed to store lesson video")
		}
		lesson.Media = ref
	}

	if err := srv.lessonRepo.Create(ctx, lesson); err != nil {
		srv.compensateUpload(ctx, lesson.Media)

		return nil, errors.Wrap(err, "failed to create lesson")
	}

	srv.log(ctx).Info("Lesson created",
		slog.Any("lessonID", lesson.ID),
		slog.Any("authorID", lesson.AuthorID),
		slog.Bool("hasVideo", lesson.Media.Attached()))

	return lesson, nil
}

// Get returns a lesson with its author's display name. Reads are public.
func (srv *lessonService) Get(ctx context.Context, lessonID uuid.UUID) (*usecase.LessonOutput, error) {
	lesson, err := srv.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	authorName := "Unknown"
	author, err := srv.userRepo.FindByID(ctx, lesson.AuthorID)
	switch {
	case err == nil:
		authorName = author.DisplayName
	case errors.Is(err, repository.ErrUserNotFound):
		// Keep the placeholder; the lesson stays readable.
	default:
		return nil, errors.Wrap(err, "failed to load lesson author")
	}

	return &usecase.LessonOutput{Lesson: lesson, AuthorName: authorName}, nil
}

// List returns all lessons, newest first.
func (srv *lessonService) List(ctx context.Context) ([]*entity.Lesson, error) {
	lessons, err := srv.lessonRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list lessons")
	}

	return lessons, nil
}

// Update edits a lesson. When the video is replaced, the new object is
// stored and the record committed before the superseded object is
// removed, so there is never a moment where the record points at a
// missing object. A failed record write rolls the new object back and
// leaves the previous object and record untouched.
func (srv *lessonService) Update(ctx context.Context, input *usecase.UpdateLessonInput) (*entity.Lesson, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title and body are required")
	}

	lesson, err := srv.loadOwnedLesson(ctx, input.CallerID, input.LessonID)
	if err != nil {
		return nil, err
	}

	previous := lesson.Media
	lesson.Title = title
	lesson.Body = body

	if input.Upload != nil {
		ref, err := srv.mediaStore.Put(ctx, input.Upload.Content, input.Upload.ContentType)
		if err != nil {
			srv.log(ctx).Error("Failed to store replacement video", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrMediaStoreFailed, "failed to store replacement video")
		}
		lesson.Media = ref
	}

	if err := srv.lessonRepo.Update(ctx, lesson); err != nil {
		if input.Upload != nil {
			srv.compensateUpload(ctx, lesson.Media)
		}
		if errors.Is(err, repository.ErrLessonNotFound) {
			// A concurrent delete won the race; the record is gone.
			return nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson vanished during update")
		}

		return nil, errors.Wrap(err, "failed to update lesson")
	}

	// Record committed; only now is the superseded object removed.
	if input.Upload != nil && previous.Attached() {
		srv.cleanupMedia(ctx, input.LessonID, previous)
	}

	srv.log(ctx).Info("Lesson updated",
		slog.Any("lessonID", lesson.ID),
		slog.Bool("videoReplaced", input.Upload != nil))

	return lesson, nil
}

// Delete removes a lesson. The record goes first; the remote object is
// then cleaned up best effort. A failed remote delete is logged and does
// not resurrect the record or fail the caller.
func (srv *lessonService) Delete(ctx context.Context, callerID, lessonID uuid.UUID) error {
	lesson, err := srv.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return err
	}

	if err := srv.lessonRepo.Delete(ctx, lessonID); err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return errors.Wrap(domainerrors.ErrLessonNotFound, "lesson vanished during delete")
		}

		return errors.Wrap(err, "failed to delete lesson")
	}

	if lesson.Media.Attached() {
		srv.cleanupMedia(ctx, lessonID, lesson.Media)
	}

	srv.log(ctx).Info("Lesson deleted", slog.Any("lessonID", lessonID))

	return nil
}

// DeleteMedia detaches a lesson's video. Clearing a lesson that has no
// video is a successful no-op.
func (srv *lessonService) DeleteMedia(ctx context.Context, callerID, lessonID uuid.UUID) error {
	lesson, err := srv.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return err
	}

	if !lesson.Media.Attached() {
		return nil
	}

	if err := srv.lessonRepo.ClearMedia(ctx, lessonID); err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return errors.Wrap(domainerrors.ErrLessonNotFound, "lesson vanished during media delete")
		}

		return errors.Wrap(err, "failed to clear lesson media")
	}

	srv.cleanupMedia(ctx, lessonID, lesson.Media)

	return nil
}

// loadLesson fetches a lesson, mapping the repository sentinel to the
// caller-facing not-found error.
func (srv *lessonService) loadLesson(ctx context.Context, lessonID uuid.UUID) (*entity.Lesson, error) {
	lesson, err := srv.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find lesson")
	}

	return lesson, nil
}

// loadOwnedLesson fetches a lesson and enforces ownership. The check is a
// plain equality test, evaluated fresh on every mutating call since
// ownership never transfers.
func (srv *lessonService) loadOwnedLesson(ctx context.Context, callerID, lessonID uuid.UUID) (*entity.Lesson, error) {
	lesson, err := srv.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if lesson.AuthorID != callerID {
		srv.log(ctx).Warn("Rejected lesson mutation by non-author",
			slog.Any("lessonID", lessonID),
			slog.Any("callerID", callerID))

		return nil, errors.Wrap(domainerrors.ErrNotLessonAuthor, "ownership check failed")
	}

	return lesson, nil
}

// compensateUpload undoes a just-stored object after the durable write it
// was meant for failed. Failure here leaves an orphan object, which is
// logged and accepted rather than surfaced.
func (srv *lessonService) compensateUpload(ctx context.Context, ref entity.MediaRef) {
	if !ref.Attached() {
		return
	}

	if err := srv.mediaStore.Delete(ctx, ref); err != nil {
		srv.log(ctx).Error("Failed to roll back stored video, object orphaned",
			slog.String("mediaKey", ref.Key),
			slog.Any("error", err))
	}
}

// cleanupMedia removes an object the committed record no longer
// references. Best effort: the record is already consistent, so failure
// only leaves a dangling remote object.
func (srv *lessonService) cleanupMedia(ctx context.Context, lessonID uuid.UUID, ref entity.MediaRef) {
	if err := srv.mediaStore.Delete(ctx, ref); err != nil {
		srv.log(ctx).Warn("Failed to delete superseded video",
			slog.Any("lessonID", lessonID),
			slog.String("mediaKey", ref.Key),
			slog.Any("error", err))
	}
}
