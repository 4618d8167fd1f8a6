package model

// DurationButton is one toggle of a card's duration selector.
type DurationButton struct {
	Month    int    `json:"month"`
	Label    string `json:"label"`
	IsActive bool   `json:"is_active"`
}

// CardView holds every display string of one plan card. The rendering layer
// patches its markup from it; nothing here refers to markup.
type CardView struct {
	PlanID          string           `json:"plan_id"`
	Name            string           `json:"name"`
	DomainLabel     string           `json:"domain"`
	Description     string           `json:"description"`
	LogoURL         string           `json:"logo"`
	ListedLabel     string           `json:"listed_label"`
	SaleLabel       string           `json:"sale_label"`
	DurationButtons []DurationButton `json:"duration_buttons"`
	Months          int              `json:"months"`
	Quote           PriceQuote       `json:"-"`
}

// ActiveMonth returns the month of the active toggle, or 0 when none is.
func (v CardView) ActiveMonth() int {
	for _, b := range v.DurationButtons {
		if b.IsActive {
			return b.Month
		}
	}
	return 0
}

// PlanDetails is the content of the plan details dialog.
type PlanDetails struct {
	PlanID      string   `json:"plan_id"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	DomainLabel string   `json:"domain"`
	LogoURL     string   `json:"logo"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	Contact     string   `json:"contact"`
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)
