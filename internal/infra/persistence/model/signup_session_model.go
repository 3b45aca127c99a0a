package model

import "time"

// SignupSessionModel mirrors the 'signup_sessions' table. Each row is the
// partial state of one in-flight signup wizard, keyed by the caller's
// session ID. Rows are deleted on commit and ignored past ExpiresAt, so
// the table only ever holds transient data.
type SignupSessionModel struct {
	SessionID    string    `gorm:"type:varchar(128);primary_key"`
	State        string    `gorm:"type:varchar(32);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	DisplayName  string    `gorm:"type:varchar(100)"`
	Username     string    `gorm:"type:varchar(100)"`
	ExpiresAt    time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SignupSessionModel) TableName() string {
	return "signup_sessions"
}
