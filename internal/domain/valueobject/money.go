package valueobject

import (
	"fmt"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const DefaultCurrency = "CHF"

type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, apperror.Validation("amount must not be negative")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.Currency, m.Amount)
}

// Budget is an open-ended range: either bound may be missing.
type Budget struct {
	Min *Money
	Max *Money
}

func NewBudget(min, max *float64) (*Budget, error) {
	if min == nil && max == nil {
		return nil, nil
	}

	budget := &Budget{}
	if min != nil {
		m, err := NewMoney(*min, DefaultCurrency)
		if err != nil {
			return nil, apperror.Validation("budget must not be negative")
		}
		budget.Min = &m
	}
	if max != nil {
		m, err := NewMoney(*max, DefaultCurrency)
		if err != nil {
			return nil, apperror.Validation("budget must not be negative")
		}
		budget.Max = &m
	}

	if budget.Min != nil && budget.Max != nil && budget.Min.Amount > budget.Max.Amount {
		return nil, apperror.Validation("minimum budget must not exceed maximum budget")
	}

	return budget, nil
}

func (b *Budget) MinAmount() *float64 {
	if b == nil || b.Min == nil {
		return nil
	}
	v := b.Min.Amount
	return &v
}

func (b *Budget) MaxAmount() *float64 {
	if b == nil || b.Max == nil {
		return nil
	}
	v := b.Max.Amount
	return &v
}
