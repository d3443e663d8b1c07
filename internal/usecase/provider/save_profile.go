package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/usecase/identity"
	"github.com/ignatzorin/servantin-backend/internal/validation"
)

type LocationInput struct {
	PostalCode string
	City       string
	Canton     string
}

type AvailabilityInput struct {
	Weekday int
	Slot    string
}

type PricingInput struct {
	CategoryID  uuid.UUID
	PricingType string
	HourlyRate  *float64
	MinHours    *int
	FixedPrice  *float64
	Currency    string
}

type SaveProfileInput struct {
	UserID              uuid.UUID
	Bio                 string
	PhotoURL            *string
	Languages           []string
	ResponseTimeMinutes *int
	CategoryIDs         []uuid.UUID
	Locations           []LocationInput
	Availabilities      []AvailabilityInput
	Pricings            []PricingInput
}

type SaveProfileUseCase struct {
	providerRepo repository.ProviderRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	promote      *identity.PromoteToProviderUseCase
}

func NewSaveProfileUseCase(
	providerRepo repository.ProviderRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	promote *identity.PromoteToProviderUseCase,
) *SaveProfileUseCase {
	return &SaveProfileUseCase{
		providerRepo: providerRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		promote:      promote,
	}
}

// Execute creates the caller's provider profile or replaces its content.
// Verification state is kept on update. The owner becomes a PROVIDER.
func (uc *SaveProfileUseCase) Execute(ctx context.Context, input SaveProfileInput) (*entity.ProviderProfile, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.providerRepo.FindByUserID(ctx, input.UserID)
	switch {
	case apperror.IsNotFound(err):
		profile = &entity.ProviderProfile{
			ID:        uuid.New(),
			UserID:    input.UserID,
			CreatedAt: time.Now(),
		}
	case err != nil:
		return nil, err
	}

	if err := fillProfile(profile, input); err != nil {
		return nil, err
	}
	profile.OwnerName = user.Name
	profile.UpdatedAt = time.Now()

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("bio", profile.Bio, 0, validation.MaxBioLength); err != nil {
		return nil, err
	}
	if len(profile.Languages) > validation.MaxLanguages {
		return nil, apperror.Validation("too many languages")
	}

	for _, categoryID := range profile.CategoryIDs {
		if _, err := uc.categoryRepo.FindByID(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	if err := uc.providerRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	if _, err := uc.promote.Execute(ctx, input.UserID); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
		"categories": len(profile.CategoryIDs),
		"locations":  len(profile.Locations),
	}).Info("provider profile saved")

	return profile, nil
}

func fillProfile(profile *entity.ProviderProfile, input SaveProfileInput) error {
	profile.Bio = strings.TrimSpace(input.Bio)
	profile.PhotoURL = input.PhotoURL
	profile.ResponseTimeMinutes = input.ResponseTimeMinutes
	profile.Languages = normalizeLanguages(input.Languages)
	profile.CategoryIDs = input.CategoryIDs

	profile.Locations = make([]entity.ServiceLocation, 0, len(input.Locations))
	for _, l := range input.Locations {
		loc, err := entity.NewServiceLocation(l.PostalCode, l.City, l.Canton)
		if err != nil {
			return err
		}
		profile.Locations = append(profile.Locations, loc)
	}

	profile.Availabilities = make([]valueobject.WeeklySlot, 0, len(input.Availabilities))
	for _, a := range input.Availabilities {
		slot, err := valueobject.NewWeeklySlot(a.Weekday, a.Slot)
		if err != nil {
			return err
		}
		profile.Availabilities = append(profile.Availabilities, slot)
	}

	profile.Pricings = make([]entity.Pricing, 0, len(input.Pricings))
	for _, p := range input.Pricings {
		pricing, err := entity.NewPricing(p.CategoryID, p.PricingType, p.HourlyRate, p.MinHours, p.FixedPrice, p.Currency)
		if err != nil {
			return err
		}
		profile.Pricings = append(profile.Pricings, pricing)
	}

	return nil
}

func normalizeLanguages(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, l := range in {
		code := strings.ToLower(strings.TrimSpace(l))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
