package model

import "time"

// PaymentChannel is a manual settlement destination printed in the payment
// payload, e.g. a mobile wallet or a bank account.
type PaymentChannel struct {
	Name    string `yaml:"name" json:"name"`
	Account string `yaml:"account" json:"account"`
}

type SummaryRowKind string

const (
	SummaryRowDuration SummaryRowKind = "duration"
	SummaryRowListed   SummaryRowKind = "listed"
	SummaryRowDiscount SummaryRowKind = "discount"
	SummaryRowTotal    SummaryRowKind = "total"
)

// SummaryRow is one display line of the checkout table.
type SummaryRow struct {
	Kind  SummaryRowKind `json:"kind"`
	Label string         `json:"label"`
	Value string         `json:"value"`
}

// OrderSummary is the transient checkout breakdown for a plan and duration.
// No payment is recorded; the payload is for manual transfer only.
type OrderSummary struct {
	Reference       string       // ULID, printed on receipts
	Plan            *Plan        // non-owning
	Months          int
	ListedTotal     float64
	DiscountedTotal float64
	DiscountAmount  float64
	Rows            []SummaryRow
	PaymentPayload  string
	CreatedAt       time.Time
}

// ShowDiscount reports whether the discount row is displayed.
func (o *OrderSummary) ShowDiscount() bool { return o != nil && o.DiscountAmount > 0 }
