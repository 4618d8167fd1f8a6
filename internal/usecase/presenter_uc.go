package usecase

import (
	"fmt"
	"sync"

	"premium-store/internal/domain/model"
)

// Localizer resolves display strings and formats money. *i18n.Translator
// satisfies it.
type Localizer interface {
	T(key string, args ...any) string
	Money(v float64) string
}

// Headline is the "starting from" price shown outside any card. Every
// presentation of a plan priced at or under the threshold overwrites it,
// so the last qualifying plan in catalog order wins.
type Headline struct {
	mu        sync.RWMutex
	threshold float64
	value     string
	set       bool
}

func NewHeadline(threshold float64) *Headline {
	return &Headline{threshold: threshold}
}

func (h *Headline) observe(plan *model.Plan, loc Localizer) {
	if plan.BasePrice > h.threshold {
		return
	}
	h.mu.Lock()
	h.value = loc.Money(plan.BasePrice)
	h.set = true
	h.mu.Unlock()
}

// reset clears the headline before a new catalog is presented.
func (h *Headline) reset() {
	h.mu.Lock()
	h.value, h.set = "", false
	h.mu.Unlock()
}

// Value returns the formatted headline price and whether any plan qualified.
func (h *Headline) Value() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value, h.set
}

// CardPresenter derives the display strings of a plan card. It never
// touches markup; the headline is its only side effect.
type CardPresenter struct {
	pricing  PricingPolicy
	loc      Localizer
	headline *Headline
}

func NewCardPresenter(pricing PricingPolicy, loc Localizer, headline *Headline) *CardPresenter {
	if pricing == nil {
		pricing = NewPricingPolicy()
	}
	return &CardPresenter{pricing: pricing, loc: loc, headline: headline}
}

// Present builds the card view for plan at the selection's active duration.
func (p *CardPresenter) Present(plan *model.Plan, sel *DurationSelection) (model.CardView, error) {
	months := sel.Active()
	q, err := p.pricing.Quote(plan.BasePrice, months)
	if err != nil {
		return model.CardView{}, fmt.Errorf("quote %s for %d months: %w", plan.ID, months, err)
	}

	listed := p.loc.T("listed_label", p.loc.Money(q.ListedTotal))
	sale := p.loc.Money(q.DiscountedTotal)
	if months > 1 {
		listed += p.loc.T("listed_suffix", months)
		sale += p.loc.T("sale_suffix_multi", months)
	} else {
		sale += p.loc.T("sale_suffix_single")
	}

	allowed := sel.Allowed()
	buttons := make([]model.DurationButton, 0, len(allowed))
	for _, m := range allowed {
		buttons = append(buttons, model.DurationButton{
			Month:    m,
			Label:    p.loc.T("duration_button", m),
			IsActive: m == months,
		})
	}

	if p.headline != nil {
		p.headline.observe(plan, p.loc)
	}

	return model.CardView{
		PlanID:          plan.ID,
		Name:            plan.Name,
		DomainLabel:     plan.DomainLabel,
		Description:     plan.Description,
		LogoURL:         plan.LogoURL,
		ListedLabel:     listed,
		SaleLabel:       sale,
		DurationButtons: buttons,
		Months:          months,
		Quote:           q,
	}, nil
}
