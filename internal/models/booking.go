package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking строка таблицы bookings.
type Booking struct {
	ID            uuid.UUID  `db:"id"`
	ClientID      uuid.UUID  `db:"client_id"`
	ProviderID    *uuid.UUID `db:"provider_id"`
	CategoryID    uuid.UUID  `db:"category_id"`
	Status        string     `db:"status"`
	Description   string     `db:"description"`
	PostalCode    string     `db:"postal_code"`
	City          string     `db:"city"`
	AddressText   *string    `db:"address_text"`
	ScheduledAt   *time.Time `db:"scheduled_at"`
	Urgency       string     `db:"urgency"`
	BudgetMin     *float64   `db:"budget_min"`
	BudgetMax     *float64   `db:"budget_max"`
	PaymentStatus string     `db:"payment_status"`
	CompletedAt   *time.Time `db:"completed_at"`
	Version       int        `db:"version"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Message строка таблицы messages.
type Message struct {
	ID        uuid.UUID `db:"id"`
	BookingID uuid.UUID `db:"booking_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Content   string    `db:"content"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

// Rating строка таблицы ratings.
type Rating struct {
	ID         uuid.UUID `db:"id"`
	BookingID  uuid.UUID `db:"booking_id"`
	ClientID   uuid.UUID `db:"client_id"`
	ProviderID uuid.UUID `db:"provider_id"`
	Score      int       `db:"score"`
	Comment    *string   `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

// RatingStats агрегат оценок по исполнителю.
type RatingStats struct {
	ProviderID uuid.UUID `db:"provider_id"`
	Average    float64   `db:"average"`
	Count      int       `db:"count"`
}
