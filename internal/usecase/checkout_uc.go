package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
)

// CopyResult reports how the payment payload reached the visitor.
type CopyResult struct {
	Copied       bool           `json:"copied"`
	Severity     model.Severity `json:"severity"`
	Message      string         `json:"message"`
	Instructions string         `json:"instructions,omitempty"` // set when the payload must be shown instead
}

// CheckoutSession builds order summaries and hands payment payloads to the
// visitor. It never talks to a payment gateway.
type CheckoutSession struct {
	pricing  PricingPolicy
	loc      Localizer
	channels []model.PaymentChannel
	contact  string
	notifier adapter.Notifier
	orders   adapter.OrderNotifier
	log      *zerolog.Logger
	now      func() time.Time
}

// NewCheckoutSession wires a checkout session. notifier and orders may be nil.
func NewCheckoutSession(
	pricing PricingPolicy,
	loc Localizer,
	channels []model.PaymentChannel,
	contact string,
	notifier adapter.Notifier,
	orders adapter.OrderNotifier,
	logger *zerolog.Logger,
) *CheckoutSession {
	if pricing == nil {
		pricing = NewPricingPolicy()
	}
	l := logging.OrNop(logger).With().Str("component", "CheckoutSession").Logger()
	return &CheckoutSession{
		pricing:  pricing,
		loc:      loc,
		channels: channels,
		contact:  contact,
		notifier: notifier,
		orders:   orders,
		log:      &l,
		now:      time.Now,
	}
}

// Open computes the order summary for months of plan.
func (c *CheckoutSession) Open(ctx context.Context, plan *model.Plan, months int) (*model.OrderSummary, error) {
	if plan.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	if !plan.Allows(months) {
		return nil, &domain.InvalidDurationError{PlanID: plan.ID, Month: months, Allowed: plan.AllowedDurations}
	}
	q, err := c.pricing.Quote(plan.BasePrice, months)
	if err != nil {
		return nil, fmt.Errorf("quote checkout: %w", err)
	}

	discount := q.Discount()
	total := c.loc.Money(q.DiscountedTotal)

	rows := []model.SummaryRow{
		{Kind: model.SummaryRowDuration, Label: c.loc.T("row_duration"), Value: c.loc.T("row_duration_value", months)},
		{Kind: model.SummaryRowListed, Label: c.loc.T("row_listed"), Value: c.loc.Money(q.ListedTotal)},
	}
	if discount > 0 {
		rows = append(rows, model.SummaryRow{Kind: model.SummaryRowDiscount, Label: c.loc.T("row_discount"), Value: "-" + c.loc.Money(discount)})
	}
	rows = append(rows, model.SummaryRow{Kind: model.SummaryRowTotal, Label: c.loc.T("row_total"), Value: total})

	order := &model.OrderSummary{
		Reference:       ulid.Make().String(),
		Plan:            plan,
		Months:          months,
		ListedTotal:     q.ListedTotal,
		DiscountedTotal: q.DiscountedTotal,
		DiscountAmount:  discount,
		Rows:            rows,
		PaymentPayload:  c.payload(plan.Name, months, total),
		CreatedAt:       c.now(),
	}

	metrics.ObserveCheckout(months, q.DiscountedTotal)
	logging.With(ctx, c.log).Info().
		Str("order_ref", order.Reference).
		Str("plan_id", plan.ID).
		Int("months", months).
		Float64("total", q.DiscountedTotal).
		Msg("checkout opened")

	if c.orders != nil {
		// Detached from the request; the summary is valid whatever happens here.
		go c.forward(context.WithoutCancel(ctx), order)
	}
	return order, nil
}

func (c *CheckoutSession) payload(name string, months int, total string) string {
	var sb strings.Builder
	sb.WriteString(c.loc.T("payment_payload", name, months, total))
	for _, ch := range c.channels {
		fmt.Fprintf(&sb, "\n%s: %s", ch.Name, ch.Account)
	}
	return sb.String()
}

func (c *CheckoutSession) forward(ctx context.Context, order *model.OrderSummary) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.orders.NotifyOrder(ctx, order); err != nil {
		c.log.Warn().Err(err).Str("order_ref", order.Reference).Msg("order notification failed")
	}
}

// CopyPayment copies the payload with clip, then shows the matching toast.
// A nil clip or domain.ErrClipboardUnavailable is the expected no-clipboard
// case; any other failure falls back the same way and is logged.
func (c *CheckoutSession) CopyPayment(ctx context.Context, order *model.OrderSummary, clip adapter.Clipboard) CopyResult {
	var err error
	if clip == nil {
		err = domain.ErrClipboardUnavailable
	} else {
		err = clip.WriteText(ctx, order.PaymentPayload)
	}

	var res CopyResult
	switch {
	case err == nil:
		metrics.IncPaymentCopy("copied")
		res = CopyResult{Copied: true, Severity: model.SeveritySuccess, Message: c.loc.T("toast_copied")}
	case errors.Is(err, domain.ErrClipboardUnavailable):
		metrics.IncPaymentCopy("unavailable")
		res = c.fallback(order)
	default:
		metrics.IncPaymentCopy("failed")
		logging.With(ctx, c.log).Warn().Err(err).Str("order_ref", order.Reference).Msg("clipboard write failed")
		res = c.fallback(order)
	}

	if c.notifier != nil {
		c.notifier.Notify(res.Message, res.Severity)
	}
	return res
}

func (c *CheckoutSession) fallback(order *model.OrderSummary) CopyResult {
	return CopyResult{
		Severity:     model.SeverityInfo,
		Message:      c.loc.T("toast_fallback", c.contact),
		Instructions: order.PaymentPayload,
	}
}
