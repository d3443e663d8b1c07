package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

func validProfile() *ProviderProfile {
	category := uuid.New()
	rate := 60.0
	return &ProviderProfile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Languages:      []string{"fr"},
		CategoryIDs:    []uuid.UUID{category},
		Locations:      []ServiceLocation{{PostalCode: "2800", City: "Delémont", Canton: "JU"}},
		Availabilities: []valueobject.WeeklySlot{{Weekday: 1, Slot: valueobject.TimeSlotMorning}},
		Pricings: []Pricing{{
			CategoryID:  category,
			PricingType: valueobject.PricingTypeHourly,
			HourlyRate:  &rate,
			Currency:    "CHF",
		}},
	}
}

func TestProviderProfile_Validate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := map[string]func(p *ProviderProfile){
		"no categories":      func(p *ProviderProfile) { p.CategoryIDs = nil; p.Pricings = nil },
		"no locations":       func(p *ProviderProfile) { p.Locations = nil },
		"no languages":       func(p *ProviderProfile) { p.Languages = nil },
		"duplicate category": func(p *ProviderProfile) { p.CategoryIDs = append(p.CategoryIDs, p.CategoryIDs[0]) },
		"duplicate slot":     func(p *ProviderProfile) { p.Availabilities = append(p.Availabilities, p.Availabilities[0]) },
		"foreign pricing":    func(p *ProviderProfile) { p.Pricings[0].CategoryID = uuid.New() },
		"duplicate pricing":  func(p *ProviderProfile) { p.Pricings = append(p.Pricings, p.Pricings[0]) },
		"negative response": func(p *ProviderProfile) {
			v := -5
			p.ResponseTimeMinutes = &v
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := validProfile()
			mutate(p)
			assert.True(t, apperror.IsValidation(p.Validate()))
		})
	}
}

func TestProviderProfile_ServesLocation(t *testing.T) {
	p := validProfile()

	assert.True(t, p.ServesLocation("2800", ""))
	assert.True(t, p.ServesLocation("", "delémont"))
	assert.True(t, p.ServesLocation("9999", "DELÉMONT"))
	assert.False(t, p.ServesLocation("2900", "Porrentruy"))
	assert.False(t, p.ServesLocation("", ""))
}

func TestProviderProfile_PricingFor(t *testing.T) {
	p := validProfile()

	assert.NotNil(t, p.PricingFor(p.CategoryIDs[0]))
	assert.Nil(t, p.PricingFor(uuid.New()))
	assert.Equal(t, "Delémont", p.PrimaryCity())
}

func TestNewPricing(t *testing.T) {
	rate := 50.0
	p, err := NewPricing(uuid.New(), "hourly", &rate, nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, *p.MinHours)
	assert.Equal(t, valueobject.DefaultCurrency, p.Currency)

	_, err = NewPricing(uuid.New(), "FIXED", nil, nil, nil, "")
	assert.True(t, apperror.IsValidation(err))

	zero := 0
	_, err = NewPricing(uuid.New(), "HOURLY", &rate, &zero, nil, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestNewServiceLocation_DefaultCanton(t *testing.T) {
	l, err := NewServiceLocation(" 2900 ", "Porrentruy", "")
	require.NoError(t, err)
	assert.Equal(t, "2900", l.PostalCode)
	assert.Equal(t, DefaultCanton, l.Canton)

	_, err = NewServiceLocation("", "Porrentruy", "JU")
	assert.Error(t, err)
}
