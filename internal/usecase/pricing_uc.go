package usecase

import (
	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
)

const (
	// ListedMarkup lifts the discounted monthly rate to the struck-through
	// "before discount" anchor price.
	ListedMarkup = 1.2
	// LongTermDiscount applies on top of the monthly rate from LongTermMonths on.
	LongTermDiscount = 0.95
	LongTermMonths   = 6
)

// PricingPolicy turns a base monthly price and a duration into totals.
type PricingPolicy interface {
	// Quote prices months of a plan whose one-month price is basePrice.
	// No rounding is applied. Returns domain.ErrInvalidArgument when
	// basePrice <= 0 or months < 1.
	Quote(basePrice float64, months int) (model.PriceQuote, error)
}

var _ PricingPolicy = (*pricingPolicy)(nil)

type pricingPolicy struct{}

// NewPricingPolicy returns the storefront's fixed pricing rules.
func NewPricingPolicy() PricingPolicy { return pricingPolicy{} }

func (pricingPolicy) Quote(basePrice float64, months int) (model.PriceQuote, error) {
	if basePrice <= 0 || months < 1 {
		return model.PriceQuote{}, domain.ErrInvalidArgument
	}
	listed := basePrice * ListedMarkup * float64(months)
	sale := basePrice * float64(months)
	if months >= LongTermMonths {
		sale *= LongTermDiscount
	}
	return model.PriceQuote{
		ListedTotal:     listed,
		DiscountedTotal: sale,
		DurationMonths:  months,
	}, nil
}
