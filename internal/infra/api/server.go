package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/logging"
	"premium-store/internal/usecase"
)

// Limiter is a per-key fixed-window rate limit, e.g. the Redis RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Deps wires the storefront API. Orders, Limiter and Metrics may be nil.
type Deps struct {
	Source            repository.CatalogSource
	Localizer         usecase.Localizer
	Pricing           usecase.PricingPolicy
	HeadlineThreshold float64
	Channels          []model.PaymentChannel
	Contact           string
	Orders            adapter.OrderNotifier
	Sessions          *SessionManager
	Limiter           Limiter
	Dev               bool
	RequestTimeout    time.Duration
	Metrics           http.Handler
	Logger            *zerolog.Logger
}

// Server is the storefront HTTP API. Each visitor gets a session owning
// its own catalog controller and checkout.
type Server struct {
	deps  Deps
	store *SessionStore
	log   *zerolog.Logger
}

func NewServer(deps Deps) *Server {
	if deps.Pricing == nil {
		deps.Pricing = usecase.NewPricingPolicy()
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 15 * time.Second
	}
	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}
	l := logging.OrNop(deps.Logger).With().Str("component", "StorefrontAPI").Logger()
	s := &Server{deps: deps, log: &l}
	s.store = NewSessionStore(s.newSession)
	return s
}

// Store exposes the session store to the sweeper.
func (s *Server) Store() *SessionStore { return s.store }

func (s *Server) newSession(rec *Recorder) (*usecase.CatalogController, *usecase.CheckoutSession) {
	d := s.deps
	checkout := usecase.NewCheckoutSession(d.Pricing, d.Localizer, d.Channels, d.Contact, rec, d.Orders, s.log)
	ctrl := usecase.NewCatalogController(usecase.CatalogDeps{
		Source:    d.Source,
		Presenter: usecase.NewCardPresenter(d.Pricing, d.Localizer, usecase.NewHeadline(d.HeadlineThreshold)),
		Checkout:  checkout,
		Sink:      rec,
		Modal:     rec,
		Localizer: d.Localizer,
		Contact:   d.Contact,
		Dev:       d.Dev,
		Logger:    s.log,
	})
	return ctrl, checkout
}

// Router builds the chi router with the middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		TraceID(s.log),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(s.deps.RequestTimeout),
	)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", s.deps.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/plans/{planID}", s.handleDetails)
		r.Post("/cards/{planID}/duration", s.handleDuration)
		r.Post("/cards/{planID}/checkout", s.handleCheckout)
		r.Post("/cards/{planID}/copy", s.handleCopy)
	})
	return r
}

type sessionCtxKey struct{}

// withSession resolves the visitor's session from the cookie, starting a
// new one when the cookie is missing, invalid or points at an evicted
// session.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if id, err := s.deps.Sessions.SessionID(r); err == nil {
			sess, _ = s.store.Get(id)
		}
		if sess == nil {
			sess = s.store.Create()
			if _, err := s.deps.Sessions.Mint(w, sess.ID); err != nil {
				logging.With(r.Context(), s.log).Error().Err(err).Msg("mint session cookie")
				writeError(w, http.StatusInternalServerError, "session unavailable")
				return
			}
			logging.With(r.Context(), s.log).Debug().Str("session_id", sess.ID).Msg("session started")
		}
		ctx := logging.WithSessID(r.Context(), sess.ID)
		ctx = context.WithValue(ctx, sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return sess
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Source string `json:"source,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
