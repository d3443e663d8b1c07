package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProviderProfile строка provider_profiles вместе с именем владельца.
type ProviderProfile struct {
	ID                  uuid.UUID      `db:"id"`
	UserID              uuid.UUID      `db:"user_id"`
	Bio                 string         `db:"bio"`
	PhotoURL            *string        `db:"photo_url"`
	Languages           pq.StringArray `db:"languages"`
	IsVerified          bool           `db:"is_verified"`
	VerificationNotes   *string        `db:"verification_notes"`
	ResponseTimeMinutes *int           `db:"response_time_minutes"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	OwnerName           string         `db:"owner_name"`
}

type ProviderCategory struct {
	ProfileID  uuid.UUID `db:"profile_id"`
	CategoryID uuid.UUID `db:"category_id"`
}

type ProviderLocation struct {
	ProfileID  uuid.UUID `db:"profile_id"`
	Position   int       `db:"position"`
	PostalCode string    `db:"postal_code"`
	City       string    `db:"city"`
	Canton     string    `db:"canton"`
}

type ProviderAvailability struct {
	ProfileID uuid.UUID `db:"profile_id"`
	Weekday   int       `db:"weekday"`
	TimeSlot  string    `db:"time_slot"`
}

type ProviderPricing struct {
	ProfileID   uuid.UUID `db:"profile_id"`
	CategoryID  uuid.UUID `db:"category_id"`
	PricingType string    `db:"pricing_type"`
	HourlyRate  *float64  `db:"hourly_rate"`
	MinHours    *int      `db:"min_hours"`
	FixedPrice  *float64  `db:"fixed_price"`
	Currency    string    `db:"currency"`
}
