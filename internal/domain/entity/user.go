// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a committed account. It is created exclusively by the final
// signup step; no partially registered user is ever persisted here.
// ID and Email are immutable after creation.
type User struct {
	ID           uuid.UUID // Stable identifier, generated by the database.
	Email        string    // Unique login identifier, stored case-normalized.
	Username     string    // Unique public handle.
	DisplayName  string    // Full name shown next to published lessons.
	PasswordHash string    // Opaque bcrypt hash; the plaintext is never stored.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
