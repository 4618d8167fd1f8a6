//go:build !integration

package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"premium-store/internal/config"
	"premium-store/internal/domain/model"
	"premium-store/internal/infra/i18n"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func testOrder(t *testing.T) *model.OrderSummary {
	t.Helper()
	p, err := model.NewPlan("netflix", "Netflix", "netflix.com", "n.png", "", 29000, false)
	if err != nil {
		t.Fatal(err)
	}
	return &model.OrderSummary{Reference: "01HZXYZ", Plan: p, Months: 3, DiscountedTotal: 87000}
}

func TestOrderNotifier_NotifyOrder(t *testing.T) {
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "vi", "₫")
	if err != nil {
		t.Fatal(err)
	}
	bot := &fakeBot{}
	n := newOrderNotifier(bot, -1001234, tr, nil)

	if err := n.NotifyOrder(context.Background(), testOrder(t)); err != nil {
		t.Fatalf("NotifyOrder: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(bot.sent))
	}
	msg := bot.sent[0]
	if msg.ChatID != -1001234 {
		t.Errorf("chat id: %d", msg.ChatID)
	}
	if msg.Text != "Đơn mới 01HZXYZ: Netflix (3 tháng) - 87.000₫" {
		t.Errorf("text: %q", msg.Text)
	}
}

func TestOrderNotifier_Errors(t *testing.T) {
	tr, _ := i18n.NewTranslator(i18n.LocalesFS, "en", "₫")

	n := newOrderNotifier(&fakeBot{err: errors.New("Forbidden: bot was kicked")}, 1, tr, nil)
	if err := n.NotifyOrder(context.Background(), testOrder(t)); err == nil || !strings.Contains(err.Error(), "kicked") {
		t.Fatalf("expected send error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bot := &fakeBot{}
	n = newOrderNotifier(bot, 1, tr, nil)
	if err := n.NotifyOrder(ctx, testOrder(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(bot.sent) != 0 {
		t.Fatal("nothing may be sent after cancellation")
	}
}

func TestNewOrderNotifier_RequiresChat(t *testing.T) {
	if _, err := NewOrderNotifier(&config.TelegramConfig{Token: "x"}, nil, nil); err == nil {
		t.Fatal("expected error without chat_id")
	}
	if _, err := NewOrderNotifier(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
