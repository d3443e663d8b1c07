package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
)

type CreateBookingRequest struct {
	CategoryID  string   `json:"category_id" binding:"required"`
	ProviderID  *string  `json:"provider_id"`
	Description string   `json:"description"`
	PostalCode  string   `json:"postal_code" binding:"required"`
	City        string   `json:"city" binding:"required"`
	AddressText *string  `json:"address_text"`
	ScheduledAt *string  `json:"scheduled_at"`
	Urgency     string   `json:"urgency"`
	BudgetMin   *float64 `json:"budget_min"`
	BudgetMax   *float64 `json:"budget_max"`
}

type DeclineBookingRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type AssignProviderRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RateBookingRequest struct {
	Score   int     `json:"score" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type BookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      uuid.UUID  `json:"client_id"`
	ProviderID    *uuid.UUID `json:"provider_id,omitempty"`
	CategoryID    uuid.UUID  `json:"category_id"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	PostalCode    string     `json:"postal_code"`
	City          string     `json:"city"`
	AddressText   *string    `json:"address_text,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Urgency       string     `json:"urgency"`
	BudgetMin     *float64   `json:"budget_min,omitempty"`
	BudgetMax     *float64   `json:"budget_max,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PartyResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingViewResponse struct {
	BookingResponse
	Category           *CategoryResponse `json:"category,omitempty"`
	Client             *PartyResponse    `json:"client,omitempty"`
	Provider           *PartyResponse    `json:"provider,omitempty"`
	Rating             *RatingResponse   `json:"rating,omitempty"`
	UnreadMessageCount int               `json:"unread_message_count"`
}

type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Score      int       `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToBookingResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ClientID:      b.ClientID,
		ProviderID:    b.ProviderID,
		CategoryID:    b.CategoryID,
		Status:        string(b.Status),
		Description:   b.Description,
		PostalCode:    b.PostalCode,
		City:          b.City,
		AddressText:   b.AddressText,
		ScheduledAt:   b.ScheduledAt,
		Urgency:       string(b.Urgency),
		BudgetMin:     b.Budget.MinAmount(),
		BudgetMax:     b.Budget.MaxAmount(),
		PaymentStatus: string(b.PaymentStatus),
		CompletedAt:   b.CompletedAt,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func ToBookingViewResponse(v *booking.BookingView) BookingViewResponse {
	resp := BookingViewResponse{
		BookingResponse:    ToBookingResponse(v.Booking),
		UnreadMessageCount: v.UnreadMessageCount,
	}
	if v.Category != nil {
		c := ToCategoryResponse(v.Category)
		resp.Category = &c
	}
	if v.Client != nil {
		resp.Client = &PartyResponse{ID: v.Client.ID, Name: v.Client.Name}
	}
	if v.Provider != nil {
		resp.Provider = &PartyResponse{ID: v.Provider.ID, Name: v.Provider.Name}
	}
	if v.Rating != nil {
		r := ToRatingResponse(v.Rating)
		resp.Rating = &r
	}
	return resp
}

func ToBookingViewsResponse(views []*booking.BookingView) []BookingViewResponse {
	out := make([]BookingViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToBookingViewResponse(v))
	}
	return out
}

func ToRatingResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ProviderID: r.ProviderID,
		Score:      r.Score,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
