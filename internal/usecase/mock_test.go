//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/i18n"
	"premium-store/internal/usecase"
)

// -----------------------------
// Utilities: tiny helpers
// -----------------------------

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func mustTranslator(t *testing.T, lang string) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, lang, "₫")
	if err != nil {
		t.Fatalf("translator %s: %v", lang, err)
	}
	return tr
}

func mustPlan(t *testing.T, id, name string, base float64, only12 bool) *model.Plan {
	t.Helper()
	p, err := model.NewPlan(id, name, id+".com", id+".png", "desc "+id, base, only12)
	if err != nil {
		t.Fatalf("NewPlan(%s): %v", id, err)
	}
	return p
}

// =============================
// Ports
// =============================

// ---- Mock CatalogSource ----

type MockCatalogSource struct {
	Plans     []*model.Plan
	Err       error
	Loc       string
	FetchFunc func(ctx context.Context) ([]*model.Plan, error)
	Calls     int
}

var _ repository.CatalogSource = (*MockCatalogSource)(nil)

func (m *MockCatalogSource) Fetch(ctx context.Context) ([]*model.Plan, error) {
	m.Calls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return m.Plans, m.Err
}

func (m *MockCatalogSource) Locator() string {
	if m.Loc == "" {
		return "./data/providers.json"
	}
	return m.Loc
}

// ---- Mock RenderSink ----

type MockSink struct {
	Rendered []model.CardView
	Patched  []model.CardView
}

var _ adapter.RenderSink = (*MockSink)(nil)

func (m *MockSink) Render(v model.CardView) { m.Rendered = append(m.Rendered, v) }
func (m *MockSink) Patch(v model.CardView)  { m.Patched = append(m.Patched, v) }

// ---- Mock Modal ----

type modalCall struct {
	Title string
	Body  any
}

type MockModal struct{ Shown []modalCall }

var _ adapter.Modal = (*MockModal)(nil)

func (m *MockModal) Show(title string, body any) { m.Shown = append(m.Shown, modalCall{title, body}) }

// ---- Mock Notifier ----

type toast struct {
	Message  string
	Severity model.Severity
}

type MockNotifier struct{ Toasts []toast }

var _ adapter.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(msg string, sev model.Severity) {
	m.Toasts = append(m.Toasts, toast{msg, sev})
}

// ---- Mock Clipboard ----

type MockClipboard struct {
	Err     error
	Written []string
}

var _ adapter.Clipboard = (*MockClipboard)(nil)

func (m *MockClipboard) WriteText(_ context.Context, s string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Written = append(m.Written, s)
	return nil
}

// ---- Mock OrderNotifier ----

type MockOrderNotifier struct {
	mu   sync.Mutex
	Err  error
	Sent chan *model.OrderSummary
}

var _ adapter.OrderNotifier = (*MockOrderNotifier)(nil)

func NewMockOrderNotifier() *MockOrderNotifier {
	return &MockOrderNotifier{Sent: make(chan *model.OrderSummary, 8)}
}

func (m *MockOrderNotifier) NotifyOrder(_ context.Context, o *model.OrderSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent <- o
	return m.Err
}

// =============================
// Wiring
// =============================

type fixture struct {
	ctrl     *usecase.CatalogController
	source   *MockCatalogSource
	sink     *MockSink
	modal    *MockModal
	notifier *MockNotifier
	checkout *usecase.CheckoutSession
}

func newFixture(t *testing.T, plans []*model.Plan, dev bool) *fixture {
	t.Helper()
	tr := mustTranslator(t, "vi")
	pricing := usecase.NewPricingPolicy()
	f := &fixture{
		source:   &MockCatalogSource{Plans: plans},
		sink:     &MockSink{},
		modal:    &MockModal{},
		notifier: &MockNotifier{},
	}
	f.checkout = usecase.NewCheckoutSession(pricing, tr, defaultChannels(), "0909.699.257", f.notifier, nil, newTestLogger())
	f.ctrl = usecase.NewCatalogController(usecase.CatalogDeps{
		Source:    f.source,
		Presenter: usecase.NewCardPresenter(pricing, tr, usecase.NewHeadline(35000)),
		Checkout:  f.checkout,
		Sink:      f.sink,
		Modal:     f.modal,
		Localizer: tr,
		Contact:   "0909.699.257",
		Dev:       dev,
		Logger:    newTestLogger(),
	})
	return f
}

func defaultChannels() []model.PaymentChannel {
	return []model.PaymentChannel{
		{Name: "Momo", Account: "0909699257"},
		{Name: "MB Bank", Account: "4888888882004"},
	}
}
