// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"premium-store/internal/domain/model"
)

// OrderNotifier forwards opened checkouts to the shop's support chat so an
// operator can match incoming transfers against them.
type OrderNotifier interface {
	NotifyOrder(ctx context.Context, order *model.OrderSummary) error
}
