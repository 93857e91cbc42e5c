// Package cart implements the per-visitor Cart Store.
package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/pricing"
	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/snapshot"
)

type blobStore interface {
	Get(ctx context.Context, visitorID, key string) ([]byte, error)
	Put(ctx context.Context, visitorID, key string, payload []byte) error
}

// Store holds one visitor's cart lines in insertion order. Every mutation is
// written through to the local store; write failures are logged only.
type Store struct {
	mu        sync.Mutex
	visitorID string
	repo      blobStore
	logger    *log.Logger

	items     []domain.CartItem
	animation int
	coupon    *pricing.Coupon

	subs    map[int]chan Event
	nextSub int
}

func New(visitorID string, repo blobStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		visitorID: visitorID,
		repo:      repo,
		logger:    logger,
		subs:      make(map[int]chan Event),
	}
}

// Load rehydrates the cart. A missing or corrupt blob leaves the cart empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil

	payload, err := s.repo.Get(ctx, s.visitorID, localstore.KeyCart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart load failed visitor=%s err=%v", s.visitorID, err)
		}
		return
	}
	items, err := snapshot.DecodeCart(payload)
	if err != nil {
		s.logger.Printf("cart snapshot discarded visitor=%s err=%v", s.visitorID, err)
		return
	}
	s.items = items
}

// Add increments an existing line or appends a new one. quantity < 1 adds one.
func (s *Store) Add(ctx context.Context, p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.CartItemFromProduct(p, quantity))
	}
	s.animation++
	s.persistLocked(ctx)
	s.publishLocked(EventAdded, p.ID)
}

// Remove deletes the line for id; absent ids are ignored.
func (s *Store) Remove(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, id)
}

// UpdateQuantity sets the quantity for id; q <= 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id, q int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q <= 0 {
		s.removeLocked(ctx, id)
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity = q
	s.persistLocked(ctx)
	s.publishLocked(EventUpdated, id)
}

// Clear empties the cart and drops any applied coupon.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.coupon = nil
	s.persistLocked(ctx)
	s.publishLocked(EventCleared, 0)
}

// Deduct takes ordered lines out of the cart: each line loses the ordered
// quantity and disappears at zero. Lines added or raised after the order was
// priced stay behind.
func (s *Store) Deduct(ctx context.Context, ordered []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range ordered {
		i := s.indexOf(o.ID)
		if i < 0 {
			continue
		}
		if s.items[i].Quantity > o.Quantity {
			s.items[i].Quantity -= o.Quantity
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	if len(s.items) == 0 {
		s.items = nil
		s.coupon = nil
		s.persistLocked(ctx)
		s.publishLocked(EventCleared, 0)
		return
	}
	s.persistLocked(ctx)
	s.publishLocked(EventUpdated, 0)
}

// Snapshot is a consistent read of everything the cart page shows.
type Snapshot struct {
	Items     []domain.CartItem `json:"items"`
	Count     int               `json:"count"`
	Animation int               `json:"animation"`
	Coupon    *pricing.Coupon   `json:"coupon"`
	Quote     pricing.CartQuote `json:"quote"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Items:     append([]domain.CartItem{}, s.items...),
		Count:     s.countLocked(),
		Animation: s.animation,
		Quote:     pricing.QuoteCart(s.items, s.coupon),
	}
	if s.coupon != nil {
		c := *s.coupon
		snap.Coupon = &c
	}
	return snap
}

func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Subtotal(s.items)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Animation is bumped on every Add so clients can replay the cart icon pulse.
func (s *Store) Animation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animation
}

// ApplyCoupon applies a known code. Unknown codes leave the current coupon in place.
func (s *Store) ApplyCoupon(code string) bool {
	c, ok := pricing.LookupCoupon(code)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = &c
	s.publishLocked(EventCoupon, 0)
	return true
}

func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return
	}
	s.coupon = nil
	s.publishLocked(EventCoupon, 0)
}

func (s *Store) Coupon() *pricing.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// Quote prices the cart as shown on the cart page.
func (s *Store) Quote() pricing.CartQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.QuoteCart(s.items, s.coupon)
}

func (s *Store) removeLocked(ctx context.Context, id int) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistLocked(ctx)
	s.publishLocked(EventRemoved, id)
}

func (s *Store) indexOf(id int) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) countLocked() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) persistLocked(ctx context.Context) {
	payload, err := snapshot.EncodeCart(s.items)
	if err != nil {
		s.logger.Printf("cart encode failed visitor=%s err=%v", s.visitorID, err)
		return
	}
	if err := s.repo.Put(ctx, s.visitorID, localstore.KeyCart, payload); err != nil {
		s.logger.Printf("cart save failed visitor=%s err=%v", s.visitorID, err)
	}
}
