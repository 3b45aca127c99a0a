package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonModel mirrors the 'lessons' table. The media columns are empty
// strings when no video is attached; the record never references an
// object that has not been durably stored first.
type LessonModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Body            string    `gorm:"type:text;not null"`
	AuthorID        uuid.UUID `gorm:"type:uuid;not null;index"`
	MediaKey        string    `gorm:"type:varchar(512)"`
	MediaProviderID string    `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (LessonModel) TableName() string {
	return "lessons"
}
