//go:build !integration

package usecase_test

import (
	"errors"
	"reflect"
	"testing"

	"premium-store/internal/domain"
	"premium-store/internal/usecase"
)

func TestDurationSelection(t *testing.T) {
	t.Run("standard plan starts on the shortest duration", func(t *testing.T) {
		sel := usecase.NewDurationSelection(mustPlan(t, "netflix", "Netflix", 29000, false))
		if sel.Active() != 1 {
			t.Fatalf("want 1, got %d", sel.Active())
		}
		if err := sel.Select(6); err != nil {
			t.Fatalf("Select(6): %v", err)
		}
		if sel.Active() != 6 {
			t.Fatalf("want 6, got %d", sel.Active())
		}
	})

	t.Run("only12 plan starts on 12 and rejects 1", func(t *testing.T) {
		sel := usecase.NewDurationSelection(mustPlan(t, "office", "Office", 45000, true))
		if sel.Active() != 12 {
			t.Fatalf("want 12, got %d", sel.Active())
		}
		err := sel.Select(1)
		if !errors.Is(err, domain.ErrInvalidDuration) {
			t.Fatalf("expected ErrInvalidDuration, got %v", err)
		}
		var ide *domain.InvalidDurationError
		if !errors.As(err, &ide) || ide.PlanID != "office" || ide.Month != 1 {
			t.Fatalf("unexpected error detail: %#v", err)
		}
		if sel.Active() != 12 {
			t.Fatalf("state changed after invalid select: %d", sel.Active())
		}
	})

	t.Run("invalid months leave state unchanged", func(t *testing.T) {
		sel := usecase.NewDurationSelection(mustPlan(t, "spotify", "Spotify", 20000, false))
		_ = sel.Select(3)
		for _, m := range []int{0, 2, 24, -1} {
			if err := sel.Select(m); err == nil {
				t.Errorf("Select(%d): expected error", m)
			}
		}
		if sel.Active() != 3 {
			t.Fatalf("want 3, got %d", sel.Active())
		}
	})

	t.Run("allowed durations are a copy", func(t *testing.T) {
		sel := usecase.NewDurationSelection(mustPlan(t, "a", "A", 1, false))
		got := sel.Allowed()
		got[0] = 42
		if sel.Allowed()[0] != 1 {
			t.Fatal("Allowed leaked internal state")
		}
	})
}

func TestCardPresenter_Labels(t *testing.T) {
	tr := mustTranslator(t, "vi")
	presenter := usecase.NewCardPresenter(usecase.NewPricingPolicy(), tr, nil)
	plan := mustPlan(t, "netflix", "Netflix", 29000, false)
	sel := usecase.NewDurationSelection(plan)

	view, err := presenter.Present(plan, sel)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if view.ListedLabel != "Giá niêm yết: 34.800₫" {
		t.Errorf("listed label: %q", view.ListedLabel)
	}
	if view.SaleLabel != "29.000₫ / tháng" {
		t.Errorf("sale label: %q", view.SaleLabel)
	}
	if view.ActiveMonth() != 1 || len(view.DurationButtons) != 4 {
		t.Errorf("buttons: %+v", view.DurationButtons)
	}
	if view.DurationButtons[2].Label != "6 tháng" {
		t.Errorf("button label: %q", view.DurationButtons[2].Label)
	}

	_ = sel.Select(3)
	view, _ = presenter.Present(plan, sel)
	if view.ListedLabel != "Giá niêm yết: 104.400₫ (3 tháng)" {
		t.Errorf("listed label (3): %q", view.ListedLabel)
	}
	if view.SaleLabel != "87.000₫ / 3 tháng" {
		t.Errorf("sale label (3): %q", view.SaleLabel)
	}

	_ = sel.Select(12)
	view, _ = presenter.Present(plan, sel)
	if view.SaleLabel != "330.600₫ / 12 tháng" {
		t.Errorf("sale label (12): %q", view.SaleLabel)
	}
	active := 0
	for _, b := range view.DurationButtons {
		if b.IsActive {
			active++
		}
	}
	if active != 1 || view.ActiveMonth() != 12 {
		t.Errorf("expected exactly one active button on 12, got %+v", view.DurationButtons)
	}
}

func TestCardPresenter_EnglishLocale(t *testing.T) {
	tr := mustTranslator(t, "en")
	presenter := usecase.NewCardPresenter(nil, tr, nil)
	plan := mustPlan(t, "x", "X", 29000, false)
	sel := usecase.NewDurationSelection(plan)
	_ = sel.Select(3)

	view, err := presenter.Present(plan, sel)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if view.ListedLabel != "Listed price: 104,400₫ (3 months)" {
		t.Errorf("listed label: %q", view.ListedLabel)
	}
	if view.SaleLabel != "87,000₫ / 3 months" {
		t.Errorf("sale label: %q", view.SaleLabel)
	}
}

func TestCardPresenter_IdempotentSelect(t *testing.T) {
	tr := mustTranslator(t, "vi")
	presenter := usecase.NewCardPresenter(nil, tr, nil)
	plan := mustPlan(t, "netflix", "Netflix", 29000, false)
	sel := usecase.NewDurationSelection(plan)
	_ = sel.Select(6)

	before, _ := presenter.Present(plan, sel)
	if err := sel.Select(6); err != nil {
		t.Fatalf("Select: %v", err)
	}
	after, _ := presenter.Present(plan, sel)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("reselecting the active month changed the view:\n%+v\n%+v", before, after)
	}
}

func TestHeadline_LastQualifyingPlanWins(t *testing.T) {
	tr := mustTranslator(t, "vi")
	h := usecase.NewHeadline(35000)
	presenter := usecase.NewCardPresenter(nil, tr, h)

	if _, ok := h.Value(); ok {
		t.Fatal("headline must be unset before any presentation")
	}

	plans := []struct {
		id   string
		base float64
	}{{"cheap", 20000}, {"pricey", 90000}, {"edge", 35000}, {"also-pricey", 50000}}
	for _, p := range plans {
		plan := mustPlan(t, p.id, p.id, p.base, false)
		if _, err := presenter.Present(plan, usecase.NewDurationSelection(plan)); err != nil {
			t.Fatalf("Present: %v", err)
		}
	}
	got, ok := h.Value()
	if !ok || got != "35.000₫" {
		t.Fatalf("want 35.000₫ from the last qualifying plan, got %q (%v)", got, ok)
	}

	// Re-presenting an earlier plan overwrites it again.
	cheap := mustPlan(t, "cheap", "cheap", 20000, false)
	_, _ = presenter.Present(cheap, usecase.NewDurationSelection(cheap))
	if got, _ := h.Value(); got != "20.000₫" {
		t.Fatalf("want 20.000₫ after re-presenting cheap, got %q", got)
	}
}
