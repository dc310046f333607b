package models

import (
	"time"

	"github.com/google/uuid"
)

// TagDB represents a tag record in the database
type TagDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    uuid.UUID `json:"-" db:"user_id"`             // Owner
	Name      string    `json:"name" db:"name"`             // Tag name
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// String returns the tag's name.
func (t TagDB) String() string {
	return t.Name
}
