package model

// PriceQuote is a derived price for one plan and duration. It is computed on
// demand and never stored. DiscountedTotal never exceeds ListedTotal.
type PriceQuote struct {
	ListedTotal     float64
	DiscountedTotal float64
	DurationMonths  int
}

// Discount is the listed-minus-discounted difference, clamped at zero.
func (q PriceQuote) Discount() float64 {
	if d := q.ListedTotal - q.DiscountedTotal; d > 0 {
		return d
	}
	return 0
}
