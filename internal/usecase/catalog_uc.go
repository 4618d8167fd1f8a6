package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
)

// CatalogDeps groups the collaborators of a CatalogController. Sink and
// Modal may be nil.
type CatalogDeps struct {
	Source    repository.CatalogSource
	Presenter *CardPresenter
	Checkout  *CheckoutSession
	Sink      adapter.RenderSink
	Modal     adapter.Modal
	Localizer Localizer
	Contact   string
	// Dev turns invalid duration requests into panics.
	Dev    bool
	Logger *zerolog.Logger
}

type card struct {
	plan   *model.Plan
	sel    *DurationSelection
	view   model.CardView
	handle *CardHandle
}

// CatalogController owns one visitor's plans and their duration selections.
// It is not safe for concurrent use; the caller serializes events.
type CatalogController struct {
	deps  CatalogDeps
	log   *zerolog.Logger
	order []string
	cards map[string]*card
}

func NewCatalogController(deps CatalogDeps) *CatalogController {
	l := logging.OrNop(deps.Logger).With().Str("component", "CatalogController").Logger()
	return &CatalogController{deps: deps, log: &l, cards: map[string]*card{}}
}

// Load fetches the catalog, creates one selection per plan at its default
// duration, renders every card once and returns the card handles in catalog
// order. A plan that survives a reload keeps its handle and registered
// handlers; its selection restarts at the default duration. A fetch failure
// is a *domain.CatalogLoadError and leaves the previous state untouched.
func (c *CatalogController) Load(ctx context.Context) ([]*CardHandle, error) {
	defer logging.TraceDuration(c.log, "CatalogController.Load")()
	locator := c.deps.Source.Locator()

	plans, err := c.deps.Source.Fetch(ctx)
	if err == nil && len(plans) == 0 {
		err = domain.ErrEmptyCatalog
	}
	metrics.ObserveCatalogLoad(locator, len(plans), err)
	if err != nil {
		var le *domain.CatalogLoadError
		if !errors.As(err, &le) {
			le = &domain.CatalogLoadError{Source: locator, Cause: err}
		}
		logging.With(ctx, c.log).Error().Err(le.Cause).Str("source", le.Source).Msg("load providers failed")
		return nil, le
	}

	if c.deps.Presenter.headline != nil {
		c.deps.Presenter.headline.reset()
	}
	order := make([]string, 0, len(plans))
	cards := make(map[string]*card, len(plans))
	for _, p := range plans {
		sel := NewDurationSelection(p)
		view, err := c.deps.Presenter.Present(p, sel)
		if err != nil {
			return nil, &domain.CatalogLoadError{Source: locator, Cause: err}
		}
		cd := &card{plan: p, sel: sel, view: view}
		if prev, ok := c.cards[p.ID]; ok {
			cd.handle = prev.handle
		} else {
			cd.handle = &CardHandle{ctrl: c, planID: p.ID}
		}
		order = append(order, p.ID)
		cards[p.ID] = cd
	}

	c.order, c.cards = order, cards
	handles := make([]*CardHandle, 0, len(order))
	for _, id := range order {
		cd := c.cards[id]
		if c.deps.Sink != nil {
			c.deps.Sink.Render(cd.view)
		}
		handles = append(handles, cd.handle)
	}
	logging.With(ctx, c.log).Info().Int("plans", len(order)).Str("source", locator).Msg("catalog loaded")
	return handles, nil
}

// Loaded reports whether a catalog has been loaded successfully.
func (c *CatalogController) Loaded() bool { return len(c.order) > 0 }

func (c *CatalogController) lookup(planID string) (*card, error) {
	cd, ok := c.cards[planID]
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", planID, domain.ErrNotFound)
	}
	return cd, nil
}

// OnDurationChosen applies a duration change to one card and re-presents
// only that card.
func (c *CatalogController) OnDurationChosen(ctx context.Context, planID string, month int) (model.CardView, error) {
	cd, err := c.lookup(planID)
	if err != nil {
		return model.CardView{}, err
	}
	if err := cd.sel.Select(month); err != nil {
		metrics.IncDurationSelection("invalid")
		if c.deps.Dev {
			panic(err)
		}
		logging.With(ctx, c.log).Warn().Err(err).Str("plan_id", planID).Int("month", month).Msg("invalid duration requested")
		return cd.view, err
	}
	metrics.IncDurationSelection("ok")

	view, err := c.deps.Presenter.Present(cd.plan, cd.sel)
	if err != nil {
		return cd.view, err
	}
	cd.view = view
	if c.deps.Sink != nil {
		c.deps.Sink.Patch(view)
	}
	for _, fn := range cd.handle.onDuration {
		fn(view)
	}
	return view, nil
}

// OnCheckout opens the checkout for the card's current duration and shows
// the summary in the modal.
func (c *CatalogController) OnCheckout(ctx context.Context, planID string) (*model.OrderSummary, error) {
	cd, err := c.lookup(planID)
	if err != nil {
		return nil, err
	}
	order, err := c.deps.Checkout.Open(ctx, cd.plan, cd.sel.Active())
	if err != nil {
		return nil, err
	}
	if c.deps.Modal != nil {
		c.deps.Modal.Show(c.deps.Localizer.T("checkout_title"), order)
	}
	for _, fn := range cd.handle.onBuy {
		fn(order)
	}
	return order, nil
}

// OnDetails returns the details dialog content for a plan and shows it.
func (c *CatalogController) OnDetails(planID string) (model.PlanDetails, error) {
	cd, err := c.lookup(planID)
	if err != nil {
		return model.PlanDetails{}, err
	}
	loc := c.deps.Localizer
	d := model.PlanDetails{
		PlanID:      cd.plan.ID,
		Title:       loc.T("details_title"),
		Name:        cd.plan.Name,
		DomainLabel: cd.plan.DomainLabel,
		LogoURL:     cd.plan.LogoURL,
		Description: cd.plan.Description,
		Perks:       []string{loc.T("perk_1"), loc.T("perk_2"), loc.T("perk_3"), loc.T("perk_4")},
		Contact:     loc.T("contact_line", c.deps.Contact),
	}
	if c.deps.Modal != nil {
		c.deps.Modal.Show(d.Title, d)
	}
	return d, nil
}

// Cards returns the current views in catalog order.
func (c *CatalogController) Cards() []model.CardView {
	out := make([]model.CardView, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cards[id].view)
	}
	return out
}

// Card returns the current view of one plan.
func (c *CatalogController) Card(planID string) (model.CardView, error) {
	cd, err := c.lookup(planID)
	if err != nil {
		return model.CardView{}, err
	}
	return cd.view, nil
}

// Handle returns the handle of a loaded card.
func (c *CatalogController) Handle(planID string) (*CardHandle, bool) {
	cd, ok := c.cards[planID]
	if !ok {
		return nil, false
	}
	return cd.handle, true
}

// Headline returns the formatted starting price, if any plan qualified.
func (c *CatalogController) Headline() (string, bool) {
	if c.deps.Presenter.headline == nil {
		return "", false
	}
	return c.deps.Presenter.headline.Value()
}

// CardHandle is the per-card object handed to the rendering layer. Events
// go in through SelectDuration and Buy; re-render and checkout results come
// out through the registered handlers.
type CardHandle struct {
	ctrl       *CatalogController
	planID     string
	onDuration []func(model.CardView)
	onBuy      []func(*model.OrderSummary)
}

func (h *CardHandle) PlanID() string { return h.planID }

// View returns the card's current view, or a zero view once a reload
// dropped the plan.
func (h *CardHandle) View() model.CardView {
	v, _ := h.ctrl.Card(h.planID)
	return v
}

// OnDurationSelected registers fn to run with the new view after every
// successful duration change.
func (h *CardHandle) OnDurationSelected(fn func(model.CardView)) {
	h.onDuration = append(h.onDuration, fn)
}

// OnBuy registers fn to run with the summary of every opened checkout.
func (h *CardHandle) OnBuy(fn func(*model.OrderSummary)) {
	h.onBuy = append(h.onBuy, fn)
}

func (h *CardHandle) SelectDuration(ctx context.Context, month int) error {
	_, err := h.ctrl.OnDurationChosen(ctx, h.planID, month)
	return err
}

func (h *CardHandle) Buy(ctx context.Context) (*model.OrderSummary, error) {
	return h.ctrl.OnCheckout(ctx, h.planID)
}
