package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"premium-store/internal/domain/model"
	"premium-store/internal/infra/metrics"
	"premium-store/internal/usecase"
)

// ===== Session cookie =====

type SessionConfig struct {
	HMACSecret   []byte
	CookieName   string
	SecureCookie bool
	TTL          time.Duration
}

// SessionManager mints and verifies the signed session cookie. The token
// only carries the session id; all state stays in the SessionStore.
type SessionManager struct {
	cfg SessionConfig
	now func() time.Time
}

func NewSessionManager(secret, cookieName string, secure bool, ttl time.Duration) *SessionManager {
	if cookieName == "" {
		cookieName = "store_session"
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionManager{
		cfg: SessionConfig{
			HMACSecret:   []byte(secret),
			CookieName:   cookieName,
			SecureCookie: secure,
			TTL:          ttl,
		},
		now: time.Now,
	}
}

func (a *SessionManager) TTL() time.Duration { return a.cfg.TTL }

type SessionClaims struct {
	jwt.RegisteredClaims
}

// Mint signs a token for sessionID and sets it as an HttpOnly cookie.
func (a *SessionManager) Mint(w http.ResponseWriter, sessionID string) (string, error) {
	now := a.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TTL)),
			Subject:   sessionID,
			Issuer:    "premium-store",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.cfg.HMACSecret)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(a.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   a.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return signed, nil
}

// SessionID extracts the session id from the cookie or a bearer token.
func (a *SessionManager) SessionID(r *http.Request) (string, error) {
	if hdr := r.Header.Get("Authorization"); hdr != "" {
		if strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			return a.parse(strings.TrimSpace(hdr[7:]))
		}
	}
	if c, err := r.Cookie(a.cfg.CookieName); err == nil {
		return a.parse(c.Value)
	}
	return "", errors.New("missing token")
}

func (a *SessionManager) parse(tok string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.cfg.HMACSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.Subject, nil
}

// ===== Session state =====

// Session is one visitor's storefront. mu serializes every transition.
type Session struct {
	ID string

	mu       sync.Mutex
	ctrl     *usecase.CatalogController
	checkout *usecase.CheckoutSession
	rec      *Recorder
	orders   map[string]*model.OrderSummary // last opened checkout per plan
	bound    map[*usecase.CardHandle]struct{}
	lastSeen time.Time
}

// rememberOrders records every checkout opened through the card handles.
// Handles kept across a reload are bound once; orders of dropped plans are
// forgotten.
func (s *Session) rememberOrders(handles []*usecase.CardHandle) {
	if s.orders == nil {
		s.orders = make(map[string]*model.OrderSummary, len(handles))
	}
	bound := make(map[*usecase.CardHandle]struct{}, len(handles))
	live := make(map[string]struct{}, len(handles))
	for _, h := range handles {
		id := h.PlanID()
		live[id] = struct{}{}
		bound[h] = struct{}{}
		if _, ok := s.bound[h]; ok {
			continue
		}
		h.OnBuy(func(o *model.OrderSummary) { s.orders[id] = o })
	}
	for id := range s.orders {
		if _, ok := live[id]; !ok {
			delete(s.orders, id)
		}
	}
	s.bound = bound
}

// SessionFactory builds the per-visitor objects of a new session.
type SessionFactory func(rec *Recorder) (*usecase.CatalogController, *usecase.CheckoutSession)

// SessionStore keeps sessions in memory only.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  SessionFactory
	now      func() time.Time
}

func NewSessionStore(factory SessionFactory) *SessionStore {
	return &SessionStore{
		sessions: map[string]*Session{},
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the live session for id and refreshes its idle clock.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Create starts a fresh session with a random id.
func (s *SessionStore) Create() *Session {
	rec := &Recorder{}
	ctrl, checkout := s.factory(rec)
	sess := &Session{
		ID:       uuid.NewString(),
		ctrl:     ctrl,
		checkout: checkout,
		rec:      rec,
		orders:   map[string]*model.OrderSummary{},
	}

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.IncSessionCreated()
	metrics.SetSessionsActive(n)
	return sess
}

// Sweep drops sessions not seen since cutoff.
func (s *SessionStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
