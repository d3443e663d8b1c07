package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/usecase/matching"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
)

type MatchRequest struct {
	CategoryID    string  `json:"category_id" binding:"required"`
	PostalCode    string  `json:"postal_code"`
	City          string  `json:"city"`
	PreferredTime *string `json:"preferred_time"`
}

type LocationDTO struct {
	PostalCode string `json:"postal_code" binding:"required"`
	City       string `json:"city" binding:"required"`
	Canton     string `json:"canton"`
}

type AvailabilityDTO struct {
	Weekday  int    `json:"weekday" binding:"min=0,max=6"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

type PricingDTO struct {
	CategoryID  uuid.UUID `json:"category_id"`
	PricingType string    `json:"pricing_type"`
	HourlyRate  *float64  `json:"hourly_rate,omitempty"`
	MinHours    *int      `json:"min_hours,omitempty"`
	FixedPrice  *float64  `json:"fixed_price,omitempty"`
	Currency    string    `json:"currency,omitempty"`
}

type SaveProfileRequest struct {
	Bio                 string            `json:"bio" binding:"max=4000"`
	PhotoURL            *string           `json:"photo_url"`
	Languages           []string          `json:"languages"`
	ResponseTimeMinutes *int              `json:"response_time_minutes"`
	CategoryIDs         []string          `json:"category_ids"`
	Locations           []LocationDTO     `json:"locations" binding:"dive"`
	Availabilities      []AvailabilityDTO `json:"availabilities" binding:"dive"`
	Pricings            []PricingDTO      `json:"pricings"`
}

type VerifyProviderRequest struct {
	Verified bool    `json:"verified"`
	Notes    *string `json:"notes"`
}

func (r SaveProfileRequest) ToInput(userID uuid.UUID) (provider.SaveProfileInput, error) {
	categoryIDs, err := ParseUUIDs(r.CategoryIDs)
	if err != nil {
		return provider.SaveProfileInput{}, err
	}

	input := provider.SaveProfileInput{
		UserID:              userID,
		Bio:                 r.Bio,
		PhotoURL:            r.PhotoURL,
		Languages:           r.Languages,
		ResponseTimeMinutes: r.ResponseTimeMinutes,
		CategoryIDs:         categoryIDs,
	}
	for _, l := range r.Locations {
		input.Locations = append(input.Locations, provider.LocationInput{PostalCode: l.PostalCode, City: l.City, Canton: l.Canton})
	}
	for _, a := range r.Availabilities {
		input.Availabilities = append(input.Availabilities, provider.AvailabilityInput{Weekday: a.Weekday, Slot: a.TimeSlot})
	}
	for _, p := range r.Pricings {
		input.Pricings = append(input.Pricings, provider.PricingInput{
			CategoryID:  p.CategoryID,
			PricingType: p.PricingType,
			HourlyRate:  p.HourlyRate,
			MinHours:    p.MinHours,
			FixedPrice:  p.FixedPrice,
			Currency:    p.Currency,
		})
	}
	return input, nil
}

type ProfileResponse struct {
	ID                  uuid.UUID         `json:"id"`
	UserID              uuid.UUID         `json:"user_id"`
	Name                string            `json:"name"`
	Bio                 string            `json:"bio"`
	PhotoURL            *string           `json:"photo_url,omitempty"`
	Languages           []string          `json:"languages"`
	IsVerified          bool              `json:"is_verified"`
	VerificationNotes   *string           `json:"verification_notes,omitempty"`
	ResponseTimeMinutes *int              `json:"response_time_minutes,omitempty"`
	CategoryIDs         []uuid.UUID       `json:"category_ids"`
	Locations           []LocationDTO     `json:"locations"`
	Availabilities      []AvailabilityDTO `json:"availabilities"`
	Pricings            []PricingDTO      `json:"pricings"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ToProfileResponse собирает ответ. Заметки верификации видны только
// владельцу и администратору, для остальных includePrivate=false.
func ToProfileResponse(p *entity.ProviderProfile, includePrivate bool) ProfileResponse {
	resp := ProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		Name:                p.OwnerName,
		Bio:                 p.Bio,
		PhotoURL:            p.PhotoURL,
		Languages:           p.Languages,
		IsVerified:          p.IsVerified,
		ResponseTimeMinutes: p.ResponseTimeMinutes,
		CategoryIDs:         p.CategoryIDs,
		Locations:           make([]LocationDTO, 0, len(p.Locations)),
		Availabilities:      make([]AvailabilityDTO, 0, len(p.Availabilities)),
		Pricings:            make([]PricingDTO, 0, len(p.Pricings)),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if includePrivate {
		resp.VerificationNotes = p.VerificationNotes
	}
	for _, l := range p.Locations {
		resp.Locations = append(resp.Locations, LocationDTO{PostalCode: l.PostalCode, City: l.City, Canton: l.Canton})
	}
	for _, a := range p.Availabilities {
		resp.Availabilities = append(resp.Availabilities, AvailabilityDTO{Weekday: a.Weekday, TimeSlot: string(a.Slot)})
	}
	for _, pr := range p.Pricings {
		resp.Pricings = append(resp.Pricings, PricingDTO{
			CategoryID:  pr.CategoryID,
			PricingType: string(pr.PricingType),
			HourlyRate:  pr.HourlyRate,
			MinHours:    pr.MinHours,
			FixedPrice:  pr.FixedPrice,
			Currency:    pr.Currency,
		})
	}
	return resp
}

type MatchPricingResponse struct {
	PricingType string   `json:"pricing_type"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
	MinHours    *int     `json:"min_hours,omitempty"`
	FixedPrice  *float64 `json:"fixed_price,omitempty"`
	Currency    string   `json:"currency"`
}

type MatchResponse struct {
	ProfileID           uuid.UUID             `json:"profile_id"`
	UserID              uuid.UUID             `json:"user_id"`
	Name                string                `json:"name"`
	PhotoURL            *string               `json:"photo_url,omitempty"`
	Bio                 string                `json:"bio"`
	Languages           []string              `json:"languages"`
	IsVerified          bool                  `json:"is_verified"`
	ResponseTimeMinutes *int                  `json:"response_time_minutes,omitempty"`
	AverageRating       *float64              `json:"average_rating"`
	RatingCount         int                   `json:"rating_count"`
	City                string                `json:"city"`
	Pricing             *MatchPricingResponse `json:"pricing"`
}

func ToMatchResponse(items []matching.ProviderMatchSummary) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, s := range items {
		m := MatchResponse{
			ProfileID:           s.ProfileID,
			UserID:              s.UserID,
			Name:                s.Name,
			PhotoURL:            s.PhotoURL,
			Bio:                 s.Bio,
			Languages:           s.Languages,
			IsVerified:          s.IsVerified,
			ResponseTimeMinutes: s.ResponseTimeMinutes,
			AverageRating:       s.AverageRating,
			RatingCount:         s.RatingCount,
			City:                s.City,
		}
		if s.Pricing != nil {
			m.Pricing = &MatchPricingResponse{
				PricingType: string(s.Pricing.PricingType),
				HourlyRate:  s.Pricing.HourlyRate,
				MinHours:    s.Pricing.MinHours,
				FixedPrice:  s.Pricing.FixedPrice,
				Currency:    s.Pricing.Currency,
			}
		}
		out = append(out, m)
	}
	return out
}
