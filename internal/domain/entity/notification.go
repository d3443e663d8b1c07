package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Payload   json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}
