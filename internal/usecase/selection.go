package usecase

import (
	"slices"

	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
)

// DurationSelection tracks the active duration of one plan card. Exactly
// one allowed duration is active at any time. Not safe for concurrent use;
// callers serialize transitions per card.
type DurationSelection struct {
	planID  string
	allowed []int
	active  int
}

// NewDurationSelection starts on the plan's default duration.
func NewDurationSelection(plan *model.Plan) *DurationSelection {
	return &DurationSelection{
		planID:  plan.ID,
		allowed: slices.Clone(plan.AllowedDurations),
		active:  plan.DefaultDuration(),
	}
}

// Select moves the active marker to month. A month outside the allowed set
// leaves the state untouched and returns *domain.InvalidDurationError.
func (s *DurationSelection) Select(month int) error {
	if !slices.Contains(s.allowed, month) {
		return &domain.InvalidDurationError{
			PlanID:  s.planID,
			Month:   month,
			Allowed: slices.Clone(s.allowed),
		}
	}
	s.active = month
	return nil
}

func (s *DurationSelection) Active() int { return s.active }

func (s *DurationSelection) PlanID() string { return s.planID }

func (s *DurationSelection) Allowed() []int { return slices.Clone(s.allowed) }
