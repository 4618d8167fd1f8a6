package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrCatalogLoad          = errors.New("catalog load failed")
	ErrEmptyCatalog         = errors.New("no providers found in catalog")
	ErrInvalidDuration      = errors.New("duration not allowed for plan")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// CatalogLoadError is returned when the provider catalog cannot be fetched,
// parsed, or turns out to be empty. Source is the locator shown to the user.
type CatalogLoadError struct {
	Source string
	Cause  error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Cause)
}

func (e *CatalogLoadError) Unwrap() error { return e.Cause }

func (e *CatalogLoadError) Is(target error) bool { return target == ErrCatalogLoad }

// InvalidDurationError means a caller asked for a month count outside the
// plan's allowed set. Correct UI wiring never produces it.
type InvalidDurationError struct {
	PlanID  string
	Month   int
	Allowed []int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("plan %s: duration %d not in %v", e.PlanID, e.Month, e.Allowed)
}

func (e *InvalidDurationError) Is(target error) bool { return target == ErrInvalidDuration }
