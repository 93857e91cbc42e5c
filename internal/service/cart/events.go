package cart

type EventType string

const (
	EventAdded    EventType = "added"
	EventUpdated  EventType = "updated"
	EventRemoved  EventType = "removed"
	EventCleared  EventType = "cleared"
	EventCoupon   EventType = "coupon"
	EventSnapshot EventType = "snapshot"
)

// Event is pushed to subscribers after each cart change.
type Event struct {
	Type      EventType `json:"type"`
	ProductID int       `json:"productId,omitempty"`
	Animation int       `json:"animation"`
	Count     int       `json:"count"`
}

const subscriberBuffer = 16

// Subscribe returns a channel of cart events and a func that ends the
// subscription. Slow subscribers miss events rather than block the cart.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Subscribers reports how many event listeners are attached.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Store) publishLocked(t EventType, productID int) {
	ev := Event{Type: t, ProductID: productID, Animation: s.animation, Count: s.countLocked()}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
