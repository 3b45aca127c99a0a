// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"lessonboard/internal/domain/entity"

	"github.com/google/uuid"
)

// userView is the public shape of a user. The password hash never leaves
// the domain layer.
type userView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

// lessonView is the public shape of a lesson. AuthorName is only filled
// on single-lesson reads.
type lessonView struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	VideoKey   string    `json:"videoKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toLessonView(lesson *entity.Lesson, authorName string) *lessonView {
	if lesson == nil {
		return nil
	}

	return &lessonView{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Body:       lesson.Body,
		AuthorID:   lesson.AuthorID,
		AuthorName: authorName,
		VideoKey:   lesson.Media.Key,
		CreatedAt:  lesson.CreatedAt,
		UpdatedAt:  lesson.UpdatedAt,
	}
}

func toLessonViews(lessons []*entity.Lesson) []*lessonView {
	views := make([]*lessonView, 0, len(lessons))
	for _, lesson := range lessons {
		views = append(views, toLessonView(lesson, ""))
	}

	return views
}
