package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const (
	MaxMessageLength = 5000
	previewLength    = 100
)

type Message struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	SenderID  uuid.UUID
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

func NewMessage(bookingID, senderID uuid.UUID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("message content is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperror.Validation("message is too long")
	}

	return &Message{
		ID:        uuid.New(),
		BookingID: bookingID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// Preview cuts the content to a short notification-friendly snippet.
func (m *Message) Preview() string {
	runes := []rune(m.Content)
	if len(runes) <= previewLength {
		return m.Content
	}
	return string(runes[:previewLength]) + "..."
}
