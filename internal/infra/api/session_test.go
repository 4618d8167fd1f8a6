//go:build !integration

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"premium-store/internal/domain/model"
	"premium-store/internal/infra/i18n"
	"premium-store/internal/usecase"
)

func requestWithCookie(t *testing.T, a *SessionManager, sid string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if _, err := a.Mint(rec, sid); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionManager_RoundTrip(t *testing.T) {
	a := NewSessionManager("secret", "", true, time.Hour)
	sid := uuid.NewString()

	rec := httptest.NewRecorder()
	tok, err := a.Mint(rec, sid)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "store_session" || !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Fatalf("cookie: %+v", cookies)
	}

	got, err := a.SessionID(requestWithCookie(t, a, sid))
	if err != nil || got != sid {
		t.Fatalf("cookie round trip: %q %v", got, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	if got, err := a.SessionID(req); err != nil || got != sid {
		t.Fatalf("bearer round trip: %q %v", got, err)
	}
}

func TestSessionManager_Rejects(t *testing.T) {
	sid := uuid.NewString()
	a := NewSessionManager("secret", "store_session", false, time.Hour)

	t.Run("missing", func(t *testing.T) {
		if _, err := a.SessionID(httptest.NewRequest(http.MethodGet, "/", nil)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessionManager("other", "store_session", false, time.Hour)
		if _, err := a.SessionID(requestWithCookie(t, other, sid)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		old := NewSessionManager("secret", "store_session", false, time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		if _, err := a.SessionID(requestWithCookie(t, old, sid)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("subject is not a session id", func(t *testing.T) {
		if _, err := a.SessionID(requestWithCookie(t, a, "admin")); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSessionStore_Sweep(t *testing.T) {
	factory := func(*Recorder) (*usecase.CatalogController, *usecase.CheckoutSession) { return nil, nil }
	store := NewSessionStore(factory)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	stale := store.Create()
	store.now = func() time.Time { return base.Add(90 * time.Minute) }
	fresh := store.Create()

	if n := store.Sweep(base.Add(30 * time.Minute)); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Fatal("stale session survived")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatal("fresh session swept")
	}
	if store.Len() != 1 {
		t.Fatalf("len: %d", store.Len())
	}
}

type staticSource struct{ plans []*model.Plan }

func (s *staticSource) Locator() string { return "./data/providers.json" }

func (s *staticSource) Fetch(context.Context) ([]*model.Plan, error) { return s.plans, nil }

func TestSession_RememberOrdersAcrossReload(t *testing.T) {
	ctx := context.Background()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "vi", "₫")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	netflix, _ := model.NewPlan("netflix", "Netflix", "netflix.com", "n.png", "", 29000, false)
	spotify, _ := model.NewPlan("spotify", "Spotify", "spotify.com", "s.png", "", 25000, false)
	src := &staticSource{plans: []*model.Plan{netflix, spotify}}

	rec := &Recorder{}
	pricing := usecase.NewPricingPolicy()
	checkout := usecase.NewCheckoutSession(pricing, tr, nil, "0909.699.257", rec, nil, nil)
	ctrl := usecase.NewCatalogController(usecase.CatalogDeps{
		Source:    src,
		Presenter: usecase.NewCardPresenter(pricing, tr, usecase.NewHeadline(35000)),
		Checkout:  checkout,
		Sink:      rec,
		Modal:     rec,
		Localizer: tr,
	})
	sess := &Session{ctrl: ctrl, checkout: checkout, rec: rec}

	load := func() []*usecase.CardHandle {
		t.Helper()
		handles, err := ctrl.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		sess.rememberOrders(handles)
		return handles
	}

	handles := load()
	first, err := handles[0].Buy(ctx)
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if sess.orders["netflix"] != first {
		t.Fatal("order not remembered")
	}

	load()
	if sess.orders["netflix"] != first {
		t.Fatal("order of a surviving plan must be kept across reload")
	}
	if len(sess.bound) != 2 {
		t.Fatalf("bound handles: %d", len(sess.bound))
	}
	second, err := handles[0].Buy(ctx)
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if sess.orders["netflix"] != second {
		t.Fatal("old handle must still record orders after reload")
	}

	src.plans = []*model.Plan{spotify}
	load()
	if _, ok := sess.orders["netflix"]; ok {
		t.Fatal("order of a dropped plan must be forgotten")
	}
	if len(sess.bound) != 1 {
		t.Fatalf("bound handles: %d", len(sess.bound))
	}
}
