package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeDB represents a recipe record in the database
type RecipeDB struct {
	ID          int64           `json:"id" db:"id"`                     // Primary key
	UserID      uuid.UUID       `json:"-" db:"user_id"`                 // Owner, immutable after creation
	Title       string          `json:"title" db:"title"`               // Recipe title
	TimeMinutes int             `json:"time_minutes" db:"time_minutes"` // Preparation time
	Price       decimal.Decimal `json:"price" db:"price"`               // Fixed-point price
	Description string          `json:"description" db:"description"`   // Optional free text
	Link        string          `json:"link" db:"link"`                 // Optional source URL
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`     // Last update timestamp
}

// String returns the recipe's title.
func (r RecipeDB) String() string {
	return r.Title
}
