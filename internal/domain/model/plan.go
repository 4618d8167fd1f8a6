package model

import (
	"slices"

	"premium-store/internal/domain"
)

// Durations offered by every unrestricted plan, in months.
var StandardDurations = []int{1, 3, 6, 12}

// MaxBasePrice bounds a monthly base price so every derived total stays
// exactly representable and formattable.
const MaxBasePrice = 1e12

// RestrictedDuration is the only duration a 12-month-only plan sells.
const RestrictedDuration = 12

// Plan is a purchasable provider offering. BasePrice is the discounted
// price for one month; it is immutable for the lifetime of a session.
type Plan struct {
	ID               string
	Name             string
	DomainLabel      string
	Description      string
	LogoURL          string
	BasePrice        float64
	AllowedDurations []int
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// NewPlan validates and constructs a plan. only12 restricts the plan to a
// single 12-month duration.
func NewPlan(id, name, domainLabel, logoURL, description string, basePrice float64, only12 bool) (*Plan, error) {
	if id == "" || name == "" || !(basePrice > 0) || basePrice > MaxBasePrice {
		return nil, domain.ErrInvalidArgument
	}
	durations := slices.Clone(StandardDurations)
	if only12 {
		durations = []int{RestrictedDuration}
	}
	return &Plan{
		ID:               id,
		Name:             name,
		DomainLabel:      domainLabel,
		Description:      description,
		LogoURL:          logoURL,
		BasePrice:        basePrice,
		AllowedDurations: durations,
	}, nil
}

// DefaultDuration is the duration a fresh card starts on.
func (p *Plan) DefaultDuration() int {
	return slices.Min(p.AllowedDurations)
}

// Allows reports whether months is one of the plan's durations.
func (p *Plan) Allows(months int) bool {
	return slices.Contains(p.AllowedDurations, months)
}

// Restricted reports whether the plan is sold only for a fixed term.
func (p *Plan) Restricted() bool {
	return len(p.AllowedDurations) == 1
}
