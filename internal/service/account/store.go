// Package account implements the per-visitor User/Session Store: simulated
// authentication, the profile and address book, and order history.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/snapshot"
	"github.com/google/uuid"
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

type blobStore interface {
	Get(ctx context.Context, visitorID, key string) ([]byte, error)
	Put(ctx context.Context, visitorID, key string, payload []byte) error
	Delete(ctx context.Context, visitorID, key string) error
}

// Delays stand in for network latency of the simulated backend.
type Delays struct {
	Login   time.Duration
	Signup  time.Duration
	Profile time.Duration
}

type Store struct {
	visitorID string
	repo      blobStore
	logger    *log.Logger
	delays    Delays
	now       func() time.Time

	initOnce sync.Once
	ready    chan struct{}

	mu     sync.Mutex
	state  State
	user   *domain.User
	orders []domain.Order
}

func New(visitorID string, repo blobStore, logger *log.Logger, delays Delays) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		visitorID: visitorID,
		repo:      repo,
		logger:    logger,
		delays:    delays,
		now:       time.Now,
		ready:     make(chan struct{}),
		state:     StateUninitialized,
	}
}

// Init reads the persisted user and order history. It runs once; later calls
// wait for the first one to finish.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		s.mu.Lock()
		s.state = StateInitializing
		s.mu.Unlock()

		user := s.loadUser(ctx)
		var orders []domain.Order
		if user != nil {
			orders = s.loadOrders(ctx)
		}

		s.mu.Lock()
		s.user = user
		s.orders = orders
		if user != nil {
			s.state = StateAuthenticated
		} else {
			s.state = StateAnonymous
		}
		s.mu.Unlock()
		close(s.ready)
	})
	<-s.ready
}

func (s *Store) loadUser(ctx context.Context) *domain.User {
	payload, err := s.repo.Get(ctx, s.visitorID, localstore.KeyUser)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("user load failed visitor=%s err=%v", s.visitorID, err)
		}
		return nil
	}
	u, err := snapshot.DecodeUser(payload)
	if err != nil {
		s.logger.Printf("user snapshot discarded visitor=%s err=%v", s.visitorID, err)
		return nil
	}
	return &u
}

func (s *Store) loadOrders(ctx context.Context) []domain.Order {
	payload, err := s.repo.Get(ctx, s.visitorID, localstore.KeyOrders)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("orders load failed visitor=%s err=%v", s.visitorID, err)
		}
		return nil
	}
	orders, err := snapshot.DecodeOrders(payload)
	if err != nil {
		s.logger.Printf("orders snapshot discarded visitor=%s err=%v", s.visitorID, err)
		return nil
	}
	return orders
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns a copy of the signed-in user.
func (s *Store) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return s.user.Clone(), true
}

// Login accepts any non-empty credentials and signs in the demo user with
// the canned order history.
func (s *Store) Login(ctx context.Context, email, password string) (domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if err := s.awaitReady(ctx); err != nil {
		return domain.User{}, err
	}
	if err := sleep(ctx, s.delays.Login); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:        demoUserID,
		Name:      displayName(email),
		Email:     email,
		Phone:     demoPhone,
		Addresses: []domain.Address{demoAddress()},
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signInLocked(ctx, u, demoOrders())
	return u.Clone(), nil
}

// Signup creates a fresh user with no addresses and no orders.
func (s *Store) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if err := s.awaitReady(ctx); err != nil {
		return domain.User{}, err
	}
	if err := sleep(ctx, s.delays.Signup); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Addresses: []domain.Address{},
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signInLocked(ctx, u, []domain.Order{})
	return u.Clone(), nil
}

func (s *Store) signInLocked(ctx context.Context, u domain.User, orders []domain.Order) {
	s.user = &u
	s.orders = orders
	s.state = StateAuthenticated
	s.saveUserLocked(ctx)
	s.saveOrdersLocked(ctx)
}

// Logout forgets the user and order history. Calling it twice is harmless.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.awaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.orders = nil
	s.state = StateAnonymous
	for _, key := range []string{localstore.KeyUser, localstore.KeyOrders} {
		if err := s.repo.Delete(ctx, s.visitorID, key); err != nil {
			s.logger.Printf("delete failed visitor=%s key=%s err=%v", s.visitorID, key, err)
		}
	}
	return nil
}

// ProfileUpdate carries the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

func (s *Store) UpdateProfile(ctx context.Context, in ProfileUpdate) (domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return domain.User{}, err
	}
	if !s.authenticated() {
		return domain.User{}, domain.ErrUnauthenticated
	}
	if err := sleep(ctx, s.delays.Profile); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, domain.ErrUnauthenticated
	}
	u := s.user.Clone()
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	s.user = &u
	s.saveUserLocked(ctx)
	return u.Clone(), nil
}

// AddressInput is an address without an id.
type AddressInput struct {
	Name      string
	Phone     string
	Street    string
	City      string
	State     string
	Pincode   string
	IsDefault bool
}

// AddAddress appends a new address. A default address takes the flag from
// every other entry.
func (s *Store) AddAddress(ctx context.Context, in AddressInput) (domain.Address, error) {
	if err := s.awaitReady(ctx); err != nil {
		return domain.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.Address{}, domain.ErrUnauthenticated
	}

	addr := domain.Address{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
		IsDefault: in.IsDefault,
	}
	u := s.user.Clone()
	if addr.IsDefault {
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = false
		}
	}
	u.Addresses = append(u.Addresses, addr)
	s.user = &u
	s.saveUserLocked(ctx)
	return addr, nil
}

// RemoveAddress drops the address with id. Removing the default leaves the
// book without one.
func (s *Store) RemoveAddress(ctx context.Context, id string) error {
	if err := s.awaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.ErrUnauthenticated
	}
	if _, ok := s.user.FindAddress(id); !ok {
		return nil
	}
	u := s.user.Clone()
	kept := u.Addresses[:0]
	for _, a := range u.Addresses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	u.Addresses = kept
	s.user = &u
	s.saveUserLocked(ctx)
	return nil
}

// SetDefaultAddress makes id the only default. Unknown ids change nothing.
func (s *Store) SetDefaultAddress(ctx context.Context, id string) error {
	if err := s.awaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.ErrUnauthenticated
	}
	if _, ok := s.user.FindAddress(id); !ok {
		return nil
	}
	u := s.user.Clone()
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = u.Addresses[i].ID == id
	}
	s.user = &u
	s.saveUserLocked(ctx)
	return nil
}

// OrderInput is everything about an order the caller decides.
type OrderInput struct {
	Items           []domain.OrderItem
	Subtotal        int64
	Shipping        int64
	Tax             int64
	Total           int64
	Status          domain.OrderStatus
	PaymentMethod   string
	ShippingAddress domain.Address
}

// CreateOrder stamps id, order number and timestamps and puts the order at
// the head of the history.
func (s *Store) CreateOrder(ctx context.Context, in OrderInput) (domain.Order, error) {
	if err := s.awaitReady(ctx); err != nil {
		return domain.Order{}, err
	}
	status := in.Status
	if status == "" {
		status = domain.OrderProcessing
	}
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	now := s.now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     s.nextOrderNumberLocked(now),
		Items:           append([]domain.OrderItem(nil), in.Items...),
		Subtotal:        in.Subtotal,
		Shipping:        in.Shipping,
		Tax:             in.Tax,
		Total:           in.Total,
		Status:          status,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	s.orders = append([]domain.Order{order}, s.orders...)
	s.saveOrdersLocked(ctx)
	return order.Clone(), nil
}

// Orders returns the history, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// Order finds an order by id or by order number.
func (s *Store) Order(ref string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndexLocked(ref)
	if i < 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	return s.orders[i].Clone(), nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, ref string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	if err := s.awaitReady(ctx); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(ctx, ref, status)
}

// CancelOrder is allowed only while the order is still processing.
func (s *Store) CancelOrder(ctx context.Context, ref string) (domain.Order, error) {
	if err := s.awaitReady(ctx); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndexLocked(ref)
	if i < 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	if s.orders[i].Status != domain.OrderProcessing {
		return domain.Order{}, fmt.Errorf("%w: order %s is %s", domain.ErrInvalidInput, s.orders[i].OrderNumber, s.orders[i].Status)
	}
	return s.setStatusLocked(ctx, ref, domain.OrderCancelled)
}

func (s *Store) setStatusLocked(ctx context.Context, ref string, status domain.OrderStatus) (domain.Order, error) {
	i := s.orderIndexLocked(ref)
	if i < 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	s.orders[i].Status = status
	s.orders[i].UpdatedAt = s.now().UTC()
	s.saveOrdersLocked(ctx)
	return s.orders[i].Clone(), nil
}

func (s *Store) orderIndexLocked(ref string) int {
	for i, o := range s.orders {
		if o.ID == ref || o.OrderNumber == ref {
			return i
		}
	}
	return -1
}

func (s *Store) authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) awaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) saveUserLocked(ctx context.Context) {
	if s.user == nil {
		return
	}
	payload, err := snapshot.EncodeUser(*s.user)
	if err == nil {
		err = s.repo.Put(ctx, s.visitorID, localstore.KeyUser, payload)
	}
	if err != nil {
		s.logger.Printf("user save failed visitor=%s err=%v", s.visitorID, err)
	}
}

func (s *Store) saveOrdersLocked(ctx context.Context) {
	payload, err := snapshot.EncodeOrders(s.orders)
	if err == nil {
		err = s.repo.Put(ctx, s.visitorID, localstore.KeyOrders, payload)
	}
	if err != nil {
		s.logger.Printf("orders save failed visitor=%s err=%v", s.visitorID, err)
	}
}

// displayName capitalises the local part of an email address.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToUpper(r)) + local[size:]
}

// orderNumber is "BE-" followed by the last eight digits of the epoch millis.
func orderNumber(t time.Time) string {
	return formatOrderNumber(t.UnixMilli() % orderNumberSpace)
}

const orderNumberSpace = 100_000_000

func formatOrderNumber(n int64) string {
	return fmt.Sprintf("BE-%08d", n)
}

// nextOrderNumberLocked steps past numbers already in the history so orders
// placed in the same millisecond stay distinguishable by number.
func (s *Store) nextOrderNumberLocked(t time.Time) string {
	n := t.UnixMilli() % orderNumberSpace
	for i := 0; i < len(s.orders)+1; i++ {
		candidate := formatOrderNumber(n)
		if s.orderIndexLocked(candidate) < 0 {
			return candidate
		}
		n = (n + 1) % orderNumberSpace
	}
	return formatOrderNumber(n)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
