package event

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Handler consumes one event. A returned error is logged by the Bus and
// does not affect other handlers.
type Handler func(e Event) error

// Subscription is the handle returned by Bus.Subscribe.
type Subscription struct {
	id       uint64
	bus      *Bus
	handler  Handler
	priority int
	types    map[Type]bool
	active   atomic.Bool
	once     sync.Once
}

// SubscribeOption customises a Subscription.
type SubscribeOption func(*Subscription)

// WithPriority orders delivery: higher priorities are called first.
func WithPriority(p int) SubscribeOption {
	return func(s *Subscription) { s.priority = p }
}

// ForTypes restricts delivery to the listed types. Without it a
// subscription receives everything.
func ForTypes(types ...Type) SubscribeOption {
	return func(s *Subscription) {
		if s.types == nil {
			s.types = make(map[Type]bool, len(types))
		}
		for _, t := range types {
			s.types[t] = true
		}
	}
}

// Handles reports whether the subscription wants events of type t.
func (s *Subscription) Handles(t Type) bool {
	return len(s.types) == 0 || s.types[t]
}

// SetActive pauses or resumes delivery without unsubscribing.
func (s *Subscription) SetActive(active bool) { s.active.Store(active) }

// Active reports whether the subscription currently receives events.
func (s *Subscription) Active() bool { return s.active.Load() }

// Unsubscribe removes the subscription from its Bus. It is safe to call more
// than once and from inside a handler; no delivery starts after it returns.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.active.Store(false)
		s.bus.remove(s.id)
	})
}

// Bus is a synchronous in-memory Sink with explicit subscription handles.
// All methods are safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64
	logger *zap.Logger
	now    func() time.Time
}

// NewBus returns an empty Bus. A nil logger is replaced by a no-op logger.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger, now: time.Now}
}

// Subscribe registers h and returns its handle.
//
// Precondition: h is non-nil.
func (b *Bus) Subscribe(h Handler, opts ...SubscribeOption) *Subscription {
	s := &Subscription{bus: b, handler: h}
	for _, o := range opts {
		o(s)
	}
	s.active.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s.id = b.nextID
	b.subs = append(b.subs, s)
	sort.SliceStable(b.subs, func(i, j int) bool { return b.subs[i].priority > b.subs[j].priority })
	return s
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every active subscription that handles its type, in
// priority order. A handler error or panic is logged and delivery continues.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = b.now()
	}
	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if !s.Active() || !s.Handles(e.Type) {
			continue
		}
		if err := b.deliver(s, e); err != nil {
			b.logger.Warn("event handler failed",
				zap.String("type", string(e.Type)),
				zap.Uint64("subscription", s.id),
				zap.Error(err),
			)
		}
	}
}

func (b *Bus) deliver(s *Subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return s.handler(e)
}
