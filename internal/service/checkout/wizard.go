// Package checkout drives the three-step checkout wizard and order placement.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/pricing"
	"balaji-storefront/internal/service/account"
)

var (
	// ErrStepIncomplete is returned when the current step's selection is missing.
	ErrStepIncomplete = errors.New("checkout step incomplete")
	// ErrOrderInFlight is returned while an order is already being placed.
	ErrOrderInFlight = errors.New("order already in progress")
	// ErrEmptyCart is returned when there is nothing to check out.
	ErrEmptyCart = errors.New("cart is empty")
)

type Step string

const (
	StepAddress Step = "address"
	StepPayment Step = "payment"
	StepReview  Step = "review"
)

var steps = []Step{StepAddress, StepPayment, StepReview}

func (s Step) index() int {
	for i, st := range steps {
		if st == s {
			return i
		}
	}
	return -1
}

type Submission string

const (
	SubmissionIdle       Submission = "idle"
	SubmissionSubmitting Submission = "submitting"
	SubmissionDone       Submission = "done"
)

type cartStore interface {
	Items() []domain.CartItem
	Deduct(ctx context.Context, ordered []domain.CartItem)
}

type accountStore interface {
	User() (domain.User, bool)
	AddAddress(ctx context.Context, in account.AddressInput) (domain.Address, error)
	CreateOrder(ctx context.Context, in account.OrderInput) (domain.Order, error)
}

// Wizard is one visitor's checkout. It reads the cart and the signed-in user
// and writes the finished order back through the account store.
type Wizard struct {
	cart    cartStore
	account accountStore
	delay   time.Duration
	logger  *log.Logger

	mu         sync.Mutex
	step       Step
	addressID  string
	paymentID  string
	submission Submission
	lastOrder  *domain.Order
}

func New(cart cartStore, acct accountStore, placeOrderDelay time.Duration, logger *log.Logger) *Wizard {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Wizard{
		cart:       cart,
		account:    acct,
		delay:      placeOrderDelay,
		logger:     logger,
		step:       StepAddress,
		submission: SubmissionIdle,
	}
}

// View is the checkout page state.
type View struct {
	Step            Step                  `json:"step"`
	Steps           []Step                `json:"steps"`
	Items           []domain.CartItem     `json:"items"`
	Addresses       []domain.Address      `json:"addresses"`
	SelectedAddress *domain.Address       `json:"selectedAddress"`
	PaymentMethods  []PaymentMethod       `json:"paymentMethods"`
	SelectedPayment *PaymentMethod        `json:"selectedPayment"`
	Submission      Submission            `json:"submission"`
	Quote           pricing.CheckoutQuote `json:"quote"`
	LastOrder       *domain.Order         `json:"lastOrder,omitempty"`
}

func (w *Wizard) State(ctx context.Context) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	user, items, err := w.beginLocked(true)
	if err != nil {
		return View{}, err
	}
	return w.viewLocked(user, items), nil
}

// SelectAddress picks a shipping address from the user's book.
func (w *Wizard) SelectAddress(ctx context.Context, id string) (View, error) {
	return w.mutate(func(user domain.User) error {
		if _, ok := user.FindAddress(id); !ok {
			return fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
		}
		w.addressID = id
		return nil
	})
}

func (w *Wizard) SelectPayment(ctx context.Context, methodID string) (View, error) {
	return w.mutate(func(domain.User) error {
		if _, ok := lookupPayment(methodID); !ok {
			return fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, methodID)
		}
		w.paymentID = methodID
		return nil
	})
}

// Next advances one step when the current step's selection is present.
func (w *Wizard) Next(ctx context.Context) (View, error) {
	return w.mutate(func(domain.User) error {
		switch w.step {
		case StepAddress:
			if w.addressID == "" {
				return fmt.Errorf("%w: select a delivery address", ErrStepIncomplete)
			}
			w.step = StepPayment
		case StepPayment:
			if w.paymentID == "" {
				return fmt.Errorf("%w: select a payment method", ErrStepIncomplete)
			}
			w.step = StepReview
		}
		return nil
	})
}

// Back returns to the previous step; on the first step it does nothing.
func (w *Wizard) Back(ctx context.Context) (View, error) {
	return w.mutate(func(domain.User) error {
		if i := w.step.index(); i > 0 {
			w.step = steps[i-1]
		}
		return nil
	})
}

// Edit jumps back to an earlier step. Jumping forward is rejected.
func (w *Wizard) Edit(ctx context.Context, step Step) (View, error) {
	return w.mutate(func(domain.User) error {
		target := step.index()
		if target < 0 {
			return fmt.Errorf("%w: unknown step %q", domain.ErrInvalidInput, step)
		}
		if target > w.step.index() {
			return fmt.Errorf("%w: cannot skip ahead to %s", ErrStepIncomplete, step)
		}
		w.step = step
		return nil
	})
}

// AddAddress saves an address from the checkout form. It becomes the default
// only when the book was empty.
func (w *Wizard) AddAddress(ctx context.Context, in account.AddressInput) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	user, _, err := w.beginLocked(false)
	if err != nil {
		return View{}, err
	}
	in.IsDefault = len(user.Addresses) == 0
	addr, err := w.account.AddAddress(ctx, in)
	if err != nil {
		return View{}, err
	}
	if w.addressID == "" {
		w.addressID = addr.ID
	}
	user, items, err := w.beginLocked(false)
	if err != nil {
		return View{}, err
	}
	return w.viewLocked(user, items), nil
}

// PlaceOrder submits the order from the review step. Only one submission may
// be in flight; cancelling ctx before the order is created returns the wizard
// to idle.
func (w *Wizard) PlaceOrder(ctx context.Context) (domain.Order, error) {
	w.mu.Lock()
	if w.submission == SubmissionSubmitting {
		w.mu.Unlock()
		return domain.Order{}, ErrOrderInFlight
	}
	user, items, err := w.beginLocked(false)
	if err != nil {
		w.mu.Unlock()
		return domain.Order{}, err
	}
	if w.step != StepReview {
		w.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%w: review the order first", ErrStepIncomplete)
	}
	addr, okAddr := user.FindAddress(w.addressID)
	method, okPay := lookupPayment(w.paymentID)
	if !okAddr || !okPay {
		w.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%w: address and payment method are required", ErrStepIncomplete)
	}
	w.submission = SubmissionSubmitting
	w.mu.Unlock()

	order, err := w.submit(ctx, items, addr, method)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.submission = SubmissionIdle
		return domain.Order{}, err
	}
	w.submission = SubmissionDone
	w.lastOrder = &order
	return order.Clone(), nil
}

func (w *Wizard) submit(ctx context.Context, items []domain.CartItem, addr domain.Address, method PaymentMethod) (domain.Order, error) {
	if err := sleep(ctx, w.delay); err != nil {
		return domain.Order{}, err
	}
	quote := pricing.QuoteCheckout(items)
	order, err := w.account.CreateOrder(ctx, account.OrderInput{
		Items:           domain.OrderItemsFromCart(items),
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Tax:             quote.Tax,
		Total:           quote.Total,
		Status:          domain.OrderProcessing,
		PaymentMethod:   method.Label,
		ShippingAddress: addr,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	// Only the priced lines leave the cart; anything added meanwhile stays.
	w.cart.Deduct(context.WithoutCancel(ctx), items)
	w.logger.Printf("order placed number=%s total=%d payment=%q", order.OrderNumber, order.Total, order.PaymentMethod)
	return order, nil
}

// Submitting reports whether an order placement is in flight.
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submission == SubmissionSubmitting
}

func (w *Wizard) mutate(fn func(user domain.User) error) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	user, items, err := w.beginLocked(false)
	if err != nil {
		return View{}, err
	}
	if w.submission == SubmissionSubmitting {
		return View{}, ErrOrderInFlight
	}
	if err := fn(user); err != nil {
		return View{}, err
	}
	return w.viewLocked(user, items), nil
}

// beginLocked enforces the page preconditions and refreshes the selection
// from the current address book. A completed checkout is only visible
// through State until the cart fills again, which starts a new one.
func (w *Wizard) beginLocked(viewOnly bool) (domain.User, []domain.CartItem, error) {
	user, ok := w.account.User()
	if !ok {
		return domain.User{}, nil, domain.ErrUnauthenticated
	}
	items := w.cart.Items()
	if w.submission == SubmissionDone {
		if len(items) == 0 {
			if viewOnly {
				return user, items, nil
			}
			return domain.User{}, nil, ErrEmptyCart
		}
		w.resetLocked()
	}
	if len(items) == 0 && w.submission != SubmissionSubmitting {
		return domain.User{}, nil, ErrEmptyCart
	}
	if _, ok := user.FindAddress(w.addressID); !ok {
		w.addressID = ""
		if def, ok := user.DefaultAddress(); ok {
			w.addressID = def.ID
		} else if len(user.Addresses) > 0 {
			w.addressID = user.Addresses[0].ID
		}
	}
	return user, items, nil
}

func (w *Wizard) resetLocked() {
	w.step = StepAddress
	w.addressID = ""
	w.paymentID = ""
	w.submission = SubmissionIdle
	w.lastOrder = nil
}

func (w *Wizard) viewLocked(user domain.User, items []domain.CartItem) View {
	v := View{
		Step:           w.step,
		Steps:          append([]Step(nil), steps...),
		Items:          items,
		Addresses:      user.Addresses,
		PaymentMethods: PaymentMethods(),
		Submission:     w.submission,
		Quote:          pricing.QuoteCheckout(items),
	}
	if a, ok := user.FindAddress(w.addressID); ok {
		v.SelectedAddress = &a
	}
	if m, ok := lookupPayment(w.paymentID); ok {
		v.SelectedPayment = &m
	}
	if w.lastOrder != nil {
		o := w.lastOrder.Clone()
		v.LastOrder = &o
	}
	return v
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
