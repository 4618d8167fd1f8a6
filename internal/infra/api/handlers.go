package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
	red "premium-store/internal/infra/redis"
	"premium-store/internal/usecase"
)

const (
	actionLimit  = 30
	actionWindow = time.Minute
)

type catalogResponse struct {
	Headline string            `json:"headline,omitempty"`
	Cards    []model.CardView  `json:"cards"`
	Labels   map[string]string `json:"labels"`
}

type cardResponse struct {
	Card model.CardView `json:"card"`
}

type orderResponse struct {
	Reference       string             `json:"reference"`
	PlanID          string             `json:"plan_id"`
	PlanName        string             `json:"plan_name"`
	Months          int                `json:"months"`
	ListedTotal     float64            `json:"listed_total"`
	DiscountedTotal float64            `json:"discounted_total"`
	DiscountAmount  float64            `json:"discount_amount"`
	ShowDiscount    bool               `json:"show_discount"`
	Rows            []model.SummaryRow `json:"rows"`
	PaymentPayload  string             `json:"payment_payload"`
	CreatedAt       time.Time          `json:"created_at"`
	Modal           *ModalEvent        `json:"modal,omitempty"`
}

type copyRequest struct {
	Clipboard ClipboardReport `json:"clipboard"`
}

type copyResponse struct {
	usecase.CopyResult
	Toasts []Toast `json:"toasts"`
}

type durationRequest struct {
	Months int `json:"months"`
}

func toOrderResponse(o *model.OrderSummary) orderResponse {
	resp := orderResponse{
		Reference:       o.Reference,
		Months:          o.Months,
		ListedTotal:     o.ListedTotal,
		DiscountedTotal: o.DiscountedTotal,
		DiscountAmount:  o.DiscountAmount,
		ShowDiscount:    o.ShowDiscount(),
		Rows:            o.Rows,
		PaymentPayload:  o.PaymentPayload,
		CreatedAt:       o.CreatedAt,
	}
	if o.Plan != nil {
		resp.PlanID = o.Plan.ID
		resp.PlanName = o.Plan.Name
	}
	return resp
}

// withLocked runs fn under the session lock with a clean recorder.
func (s *Server) withLocked(r *http.Request, fn func(sess *Session)) {
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.rec.Reset()
	fn(sess)
}

// ensureLoaded loads the session catalog on first use.
func (s *Server) ensureLoaded(ctx context.Context, sess *Session, force bool) error {
	if sess.ctrl.Loaded() && !force {
		return nil
	}
	handles, err := sess.ctrl.Load(ctx)
	if err != nil {
		return err
	}
	sess.rememberOrders(handles)
	return nil
}

func (s *Server) allow(r *http.Request, sess *Session, action string) bool {
	if s.deps.Limiter == nil {
		return true
	}
	ok, err := s.deps.Limiter.Allow(r.Context(), red.SessionActionKey(sess.ID, action), actionLimit, actionWindow)
	if err != nil {
		logging.With(r.Context(), s.log).Warn().Err(err).Str("action", action).Msg("rate limiter unavailable")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered(action)
	}
	return ok
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	loc := s.deps.Localizer
	var le *domain.CatalogLoadError
	switch {
	case errors.As(err, &le):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  loc.T("catalog_error"),
			Detail: loc.T("catalog_error_detail", le.Cause.Error()),
			Source: le.Source,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration), errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("reload") == "1"
	s.withLocked(r, func(sess *Session) {
		if err := s.ensureLoaded(r.Context(), sess, force); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		loc := s.deps.Localizer
		resp := catalogResponse{
			Cards: sess.ctrl.Cards(),
			Labels: map[string]string{
				"price_note":      loc.T("price_note"),
				"choose_duration": loc.T("choose_duration"),
				"buy_button":      loc.T("buy_button"),
			},
		}
		if h, ok := sess.ctrl.Headline(); ok {
			resp.Headline = h
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	s.withLocked(r, func(sess *Session) {
		if err := s.ensureLoaded(r.Context(), sess, false); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		d, err := sess.ctrl.OnDetails(planID)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	})
}

func (s *Server) handleDuration(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.withLocked(r, func(sess *Session) {
		if err := s.ensureLoaded(r.Context(), sess, false); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		view, err := sess.ctrl.OnDurationChosen(r.Context(), planID, req.Months)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cardResponse{Card: view})
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	s.withLocked(r, func(sess *Session) {
		if !s.allow(r, sess, "checkout") {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		if err := s.ensureLoaded(r.Context(), sess, false); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		h, ok := sess.ctrl.Handle(planID)
		if !ok {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		order, err := h.Buy(r.Context())
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		resp := toOrderResponse(order)
		if len(sess.rec.Modals) > 0 {
			m := sess.rec.Modals[len(sess.rec.Modals)-1]
			resp.Modal = &m
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	var req copyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Clipboard == "" {
		req.Clipboard = ClipboardUnavailable
	}
	if !req.Clipboard.Valid() {
		writeError(w, http.StatusBadRequest, "clipboard must be ok, failed or unavailable")
		return
	}
	s.withLocked(r, func(sess *Session) {
		if !s.allow(r, sess, "copy") {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		order, ok := sess.orders[planID]
		if !ok {
			writeError(w, http.StatusConflict, "no checkout open for this plan")
			return
		}
		res := sess.checkout.CopyPayment(r.Context(), order, reportedClipboard{report: req.Clipboard})
		writeJSON(w, http.StatusOK, copyResponse{CopyResult: res, Toasts: sess.rec.Toasts})
	})
}
