package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const DefaultCanton = "JU"

type ProviderProfile struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Bio                 string
	PhotoURL            *string
	Languages           []string
	IsVerified          bool
	VerificationNotes   *string
	ResponseTimeMinutes *int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// OwnerName is read from the owning user and never written back.
	OwnerName string

	CategoryIDs    []uuid.UUID
	Locations      []ServiceLocation
	Availabilities []valueobject.WeeklySlot
	Pricings       []Pricing
}

type ServiceLocation struct {
	PostalCode string
	City       string
	Canton     string
}

type Pricing struct {
	CategoryID  uuid.UUID
	PricingType valueobject.PricingType
	HourlyRate  *float64
	MinHours    *int
	FixedPrice  *float64
	Currency    string
}

func NewServiceLocation(postalCode, city, canton string) (ServiceLocation, error) {
	postalCode = strings.TrimSpace(postalCode)
	city = strings.TrimSpace(city)
	if postalCode == "" || city == "" {
		return ServiceLocation{}, apperror.Validation("location needs a postal code and a city")
	}
	canton = strings.ToUpper(strings.TrimSpace(canton))
	if canton == "" {
		canton = DefaultCanton
	}
	return ServiceLocation{PostalCode: postalCode, City: city, Canton: canton}, nil
}

func NewPricing(categoryID uuid.UUID, pricingType string, hourlyRate *float64, minHours *int, fixedPrice *float64, currency string) (Pricing, error) {
	pt, err := valueobject.NewPricingType(pricingType)
	if err != nil {
		return Pricing{}, err
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	p := Pricing{CategoryID: categoryID, PricingType: pt, Currency: currency}
	switch pt {
	case valueobject.PricingTypeHourly:
		if hourlyRate == nil || *hourlyRate <= 0 {
			return Pricing{}, apperror.Validation("hourly pricing needs a positive hourly rate")
		}
		hours := 1
		if minHours != nil {
			if *minHours < 1 {
				return Pricing{}, apperror.Validation("minimum hours must be at least 1")
			}
			hours = *minHours
		}
		p.HourlyRate = hourlyRate
		p.MinHours = &hours
	case valueobject.PricingTypeFixed:
		if fixedPrice == nil || *fixedPrice <= 0 {
			return Pricing{}, apperror.Validation("fixed pricing needs a positive price")
		}
		p.FixedPrice = fixedPrice
	}
	return p, nil
}

// Validate checks the invariants a profile must satisfy when it is saved.
func (p *ProviderProfile) Validate() error {
	if len(p.CategoryIDs) == 0 {
		return apperror.Validation("at least one category is required")
	}
	if len(p.Locations) == 0 {
		return apperror.Validation("at least one location is required")
	}
	if len(p.Languages) == 0 {
		return apperror.Validation("at least one language is required")
	}

	categories := make(map[uuid.UUID]struct{}, len(p.CategoryIDs))
	for _, id := range p.CategoryIDs {
		if _, dup := categories[id]; dup {
			return apperror.Validation("category listed more than once")
		}
		categories[id] = struct{}{}
	}

	slots := make(map[valueobject.WeeklySlot]struct{}, len(p.Availabilities))
	for _, s := range p.Availabilities {
		if _, dup := slots[s]; dup {
			return apperror.Validation("availability slot listed more than once")
		}
		slots[s] = struct{}{}
	}

	priced := make(map[uuid.UUID]struct{}, len(p.Pricings))
	for _, pr := range p.Pricings {
		if _, ok := categories[pr.CategoryID]; !ok {
			return apperror.Validation("pricing refers to a category the provider does not serve")
		}
		if _, dup := priced[pr.CategoryID]; dup {
			return apperror.Validation("only one pricing per category is allowed")
		}
		priced[pr.CategoryID] = struct{}{}
	}

	if p.ResponseTimeMinutes != nil && *p.ResponseTimeMinutes < 0 {
		return apperror.Validation("response time must not be negative")
	}
	return nil
}

func (p *ProviderProfile) ServesCategory(categoryID uuid.UUID) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// ServesLocation matches the postal code exactly or the city ignoring case.
func (p *ProviderProfile) ServesLocation(postalCode, city string) bool {
	postalCode = strings.TrimSpace(postalCode)
	city = strings.TrimSpace(city)
	for _, l := range p.Locations {
		if postalCode != "" && l.PostalCode == postalCode {
			return true
		}
		if city != "" && strings.EqualFold(l.City, city) {
			return true
		}
	}
	return false
}

func (p *ProviderProfile) IsAvailable(slot valueobject.WeeklySlot) bool {
	for _, s := range p.Availabilities {
		if s == slot {
			return true
		}
	}
	return false
}

func (p *ProviderProfile) PricingFor(categoryID uuid.UUID) *Pricing {
	for i := range p.Pricings {
		if p.Pricings[i].CategoryID == categoryID {
			return &p.Pricings[i]
		}
	}
	return nil
}

// PrimaryCity is the city of the first registered location.
func (p *ProviderProfile) PrimaryCity() string {
	if len(p.Locations) == 0 {
		return ""
	}
	return p.Locations[0].City
}

func (p *ProviderProfile) SetVerification(verified bool, notes *string) {
	p.IsVerified = verified
	p.VerificationNotes = notes
	p.UpdatedAt = time.Now()
}
