package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"premium-store/internal/config"
	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
)

// Localizer formats the notice text. *i18n.Translator satisfies it.
type Localizer interface {
	T(key string, args ...any) string
	Money(v float64) string
}

// sender is the part of *tgbotapi.BotAPI the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ adapter.OrderNotifier = (*OrderNotifier)(nil)

// OrderNotifier posts a short notice about every opened checkout to the
// shop's Telegram chat.
type OrderNotifier struct {
	bot    sender
	chatID int64
	loc    Localizer
	log    *zerolog.Logger
}

// NewOrderNotifier connects to the Bot API with cfg.Token.
func NewOrderNotifier(cfg *config.TelegramConfig, loc Localizer, logger *zerolog.Logger) (*OrderNotifier, error) {
	if cfg == nil {
		return nil, errors.New("telegram config is nil")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat_id is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return newOrderNotifier(bot, cfg.ChatID, loc, logger), nil
}

func newOrderNotifier(bot sender, chatID int64, loc Localizer, logger *zerolog.Logger) *OrderNotifier {
	l := logging.OrNop(logger).With().Str("component", "TelegramOrderNotifier").Logger()
	return &OrderNotifier{bot: bot, chatID: chatID, loc: loc, log: &l}
}

// Notice renders the chat text for order.
func (n *OrderNotifier) Notice(order *model.OrderSummary) string {
	name := ""
	if order.Plan != nil {
		name = order.Plan.Name
	}
	return n.loc.T("order_notice", order.Reference, name, order.Months, n.loc.Money(order.DiscountedTotal))
}

func (n *OrderNotifier) NotifyOrder(ctx context.Context, order *model.OrderSummary) error {
	if order == nil {
		return errors.New("nil order")
	}
	if err := ctx.Err(); err != nil {
		metrics.IncOrderNotification("canceled")
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, n.Notice(order))
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		metrics.IncOrderNotification("failed")
		return fmt.Errorf("send order notice: %w", err)
	}
	metrics.IncOrderNotification("sent")
	logging.With(ctx, n.log).Debug().Str("order_ref", order.Reference).Msg("order notice sent")
	return nil
}
