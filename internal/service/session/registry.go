// Package session composes each visitor's stores and keeps them in memory
// while the visitor is active.
package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/service/account"
	"balaji-storefront/internal/service/cart"
	"balaji-storefront/internal/service/checkout"
)

// Options carries the simulated latencies handed to each visitor's stores.
type Options struct {
	Delays          account.Delays
	PlaceOrderDelay time.Duration
}

// Session is one visitor's cart, account and checkout wizard.
type Session struct {
	VisitorID string
	Cart      *cart.Store
	Account   *account.Store
	Checkout  *checkout.Wizard

	initOnce sync.Once
	lastSeen time.Time
}

type Registry struct {
	repo   localstore.Repository
	logger *log.Logger
	opts   Options
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(repo localstore.Repository, logger *log.Logger, opts Options) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		repo:     repo,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open returns the visitor's session, loading persisted state on first use.
// Concurrent callers for the same visitor wait for that load.
func (r *Registry) Open(ctx context.Context, visitorID string) (*Session, error) {
	if visitorID == "" {
		return nil, errors.New("visitor id required")
	}
	r.mu.Lock()
	s, ok := r.sessions[visitorID]
	if !ok {
		s = r.newSession(visitorID)
		r.sessions[visitorID] = s
	}
	s.lastSeen = r.now()
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.initOnce.Do(func() {
		// A cancelled request must not leave the stores half loaded.
		loadCtx := context.WithoutCancel(ctx)
		s.Cart.Load(loadCtx)
		s.Account.Init(loadCtx)
	})
	return s, nil
}

func (r *Registry) newSession(visitorID string) *Session {
	c := cart.New(visitorID, r.repo, r.logger)
	a := account.New(visitorID, r.repo, r.logger, r.opts.Delays)
	return &Session{
		VisitorID: visitorID,
		Cart:      c,
		Account:   a,
		Checkout:  checkout.New(c, a, r.opts.PlaceOrderDelay, r.logger),
	}
}

// Evict drops sessions idle for longer than idle and returns how many went.
// Their state stays in the local store and is reloaded on the next Open.
// Sessions with a live cart listener or an order being placed are kept, so
// the visitor never ends up with two copies of the same stores.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) && !s.busy() {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *Session) busy() bool {
	return s.Cart.Subscribers() > 0 || s.Checkout.Submitting()
}

// Status reports the account state of a loaded session.
func (r *Registry) Status(visitorID string) (account.State, bool) {
	r.mu.Lock()
	s, ok := r.sessions[visitorID]
	r.mu.Unlock()
	if !ok {
		return account.StateUninitialized, false
	}
	return s.Account.State(), true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Ping checks the backing local store.
func (r *Registry) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}
