package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type Rating struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	Score      int
	Comment    *string
	CreatedAt  time.Time
}

func NewRating(bookingID, clientID, providerID uuid.UUID, score int, comment *string) (*Rating, error) {
	if score < 1 || score > 5 {
		return nil, apperror.Validation("score must be between 1 and 5")
	}
	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	return &Rating{
		ID:         uuid.New(),
		BookingID:  bookingID,
		ClientID:   clientID,
		ProviderID: providerID,
		Score:      score,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}, nil
}

// RatingStats aggregates a provider's ratings. Average is nil without ratings.
type RatingStats struct {
	Average *float64
	Count   int
}

// RankValue is the average used for ordering; no ratings rank as 0.0.
func (s RatingStats) RankValue() float64 {
	if s.Average == nil {
		return 0
	}
	return *s.Average
}
