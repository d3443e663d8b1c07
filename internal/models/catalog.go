package models

import (
	"time"

	"github.com/google/uuid"
)

// Category строка таблицы categories.
type Category struct {
	ID          uuid.UUID `db:"id"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Icon        *string   `db:"icon"`
	SortOrder   int       `db:"sort_order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}
