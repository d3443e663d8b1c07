package matching

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type MatchInput struct {
	CategoryID    uuid.UUID
	PostalCode    string
	City          string
	PreferredTime *time.Time
}

type PricingSummary struct {
	PricingType valueobject.PricingType
	HourlyRate  *float64
	MinHours    *int
	FixedPrice  *float64
	Currency    string
}

type ProviderMatchSummary struct {
	ProfileID           uuid.UUID
	UserID              uuid.UUID
	Name                string
	PhotoURL            *string
	Bio                 string
	Languages           []string
	IsVerified          bool
	ResponseTimeMinutes *int
	AverageRating       *float64
	RatingCount         int
	City                string
	Pricing             *PricingSummary
}

type MatchProvidersUseCase struct {
	providerRepo repository.ProviderRepository
	ratingRepo   repository.RatingRepository
	location     *time.Location
}

// NewMatchProvidersUseCase creates the use case. loc is the zone in which a
// preferred time is turned into a weekday and slot; nil means UTC.
func NewMatchProvidersUseCase(providerRepo repository.ProviderRepository, ratingRepo repository.RatingRepository, loc *time.Location) *MatchProvidersUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MatchProvidersUseCase{providerRepo: providerRepo, ratingRepo: ratingRepo, location: loc}
}

func (uc *MatchProvidersUseCase) Execute(ctx context.Context, input MatchInput) ([]ProviderMatchSummary, error) {
	if input.CategoryID == uuid.Nil {
		return nil, apperror.Validation("category is required")
	}
	postalCode := strings.TrimSpace(input.PostalCode)
	city := strings.TrimSpace(input.City)
	if postalCode == "" && city == "" {
		return nil, apperror.Validation("postal code or city is required")
	}

	profiles, err := uc.providerRepo.FindCandidates(ctx, input.CategoryID, postalCode, city)
	if err != nil {
		return nil, err
	}

	var slot *valueobject.WeeklySlot
	if input.PreferredTime != nil {
		s := valueobject.WeeklySlotAt(*input.PreferredTime, uc.location)
		slot = &s
	}

	profiles = selectCandidates(profiles, input.CategoryID, postalCode, city, slot)
	if len(profiles) == 0 {
		return []ProviderMatchSummary{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	stats, err := uc.ratingRepo.StatsForProviders(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	cands := make([]candidate, 0, len(profiles))
	for _, p := range profiles {
		cands = append(cands, candidate{profile: p, stats: stats[p.UserID]})
	}
	rank(cands)

	result := make([]ProviderMatchSummary, 0, len(cands))
	for _, c := range cands {
		result = append(result, project(c, input.CategoryID))
	}

	logger.Log.WithFields(logrus.Fields{
		"category_id": input.CategoryID,
		"postal_code": postalCode,
		"city":        city,
		"slot":        slot,
		"matches":     len(result),
	}).Debug("providers matched")

	return result, nil
}

func project(c candidate, categoryID uuid.UUID) ProviderMatchSummary {
	p := c.profile
	summary := ProviderMatchSummary{
		ProfileID:           p.ID,
		UserID:              p.UserID,
		Name:                p.OwnerName,
		PhotoURL:            p.PhotoURL,
		Bio:                 p.Bio,
		Languages:           p.Languages,
		IsVerified:          p.IsVerified,
		ResponseTimeMinutes: p.ResponseTimeMinutes,
		AverageRating:       c.stats.Average,
		RatingCount:         c.stats.Count,
		City:                p.PrimaryCity(),
	}

	if pricing := p.PricingFor(categoryID); pricing != nil {
		summary.Pricing = &PricingSummary{
			PricingType: pricing.PricingType,
			HourlyRate:  pricing.HourlyRate,
			MinHours:    pricing.MinHours,
			FixedPrice:  pricing.FixedPrice,
			Currency:    pricing.Currency,
		}
	}

	return summary
}
