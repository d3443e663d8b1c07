package entity

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description *string
	Icon        *string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
}
