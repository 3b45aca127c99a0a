package postgres

import (
	"context"

	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	"lessonboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lessonRepository implements the domain's LessonRepository interface.
type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository is the constructor for lessonRepository.
func NewLessonRepository(db *gorm.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

// Create persists a new lesson and fills in its generated ID.
func (repo *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	lessonM := fromLessonDomain(lesson)

	if err := repo.db.WithContext(ctx).Create(lessonM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required lesson information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lesson")
	}

	// Update the entity with generated values
	lesson.ID = lessonM.ID
	lesson.CreatedAt = lessonM.CreatedAt
	lesson.UpdatedAt = lessonM.UpdatedAt

	return nil
}

// FindByID retrieves a single lesson by its unique ID.
func (repo *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	var lessonM model.LessonModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&lessonM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLessonNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toLessonDomain(&lessonM), nil
}

// List returns all lessons, newest first.
func (repo *lessonRepository) List(ctx context.Context) ([]*entity.Lesson, error) {
	var lessonModels []*model.LessonModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&lessonModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	lessons := make([]*entity.Lesson, 0, len(lessonModels))
	for _, lessonM := range lessonModels {
		lessons = append(lessons, toLessonDomain(lessonM))
	}

	return lessons, nil
}

// Update overwrites title, body and media reference in a single durable
// write. A vanished record surfaces as ErrLessonNotFound so the caller
// can compensate.
func (repo *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LessonModel{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]any{
			"title":             lesson.Title,
			"body":              lesson.Body,
			"media_key":         lesson.Media.Key,
			"media_provider_id": lesson.Media.ProviderID,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update lesson")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// Delete removes the lesson record.
func (repo *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.LessonModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete lesson")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// ClearMedia empties the media reference of a lesson, leaving title and
// body untouched.
func (repo *lessonRepository) ClearMedia(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LessonModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"media_key":         "",
			"media_provider_id": "",
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear lesson media")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toLessonDomain converts a GORM LessonModel to a domain Lesson entity.
func toLessonDomain(data *model.LessonModel) *entity.Lesson {
	if data == nil {
		return nil
	}

	return &entity.Lesson{
		ID:       data.ID,
		Title:    data.Title,
		Body:     data.Body,
		AuthorID: data.AuthorID,
		Media: entity.MediaRef{
			Key:        data.MediaKey,
			ProviderID: data.MediaProviderID,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromLessonDomain converts a domain Lesson entity to a GORM LessonModel.
func fromLessonDomain(data *entity.Lesson) *model.LessonModel {
	if data == nil {
		return nil
	}

	return &model.LessonModel{
		ID:              data.ID,
		Title:           data.Title,
		Body:            data.Body,
		AuthorID:        data.AuthorID,
		MediaKey:        data.Media.Key,
		MediaProviderID: data.Media.ProviderID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
