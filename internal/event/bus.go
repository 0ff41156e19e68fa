package event

import (
	"slices"
	"sync"
	"sync/atomic"
)

// HandlerFunc processes a delivered event.
type HandlerFunc func(Event)

// Subscription identifies one registered handler so it can be removed.
type Subscription uint64

// Bus delivers published events to matching subscribers.
// Dispatch is synchronous; Publish returns after every matching handler
// has run. Handlers that panic are recovered and counted, never
// propagated. The zero value is not usable; create a Bus with NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Subscription]subscriber
	nextID atomic.Uint64

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerPanics atomic.Uint64
}

type subscriber struct {
	pattern Topic
	fn      HandlerFunc
}

// Stats reports bus counters for introspection and tests.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerPanics uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Subscription]subscriber)}
}

// SubscribeFunc registers a handler for every event whose topic matches
// the pattern. The returned Subscription unsubscribes via Unsubscribe.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc) Subscription {
	id := Subscription(b.nextID.Add(1))

	b.mu.Lock()
	b.subs[id] = subscriber{pattern: pattern, fn: fn}
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription. Unknown ids are a no-op.
func (b *Bus) Unsubscribe(id Subscription) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

// Publish delivers the event to all matching subscribers, in
// subscription order, and returns when they have all run.
func (b *Bus) Publish(ev Event) {
	b.published.Add(1)

	b.mu.RLock()
	ids := make([]Subscription, 0, len(b.subs))
	for id, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			ids = append(ids, id)
		}
	}
	// Subscription ids are monotonic, so sorting restores the order the
	// handlers were registered in.
	slices.Sort(ids)
	matched := make([]HandlerFunc, 0, len(ids))
	for _, id := range ids {
		matched = append(matched, b.subs[id].fn)
	}
	b.mu.RUnlock()

	for _, fn := range matched {
		b.deliver(fn, ev)
	}
}

// deliver runs one handler, recovering any panic.
func (b *Bus) deliver(fn HandlerFunc, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
		}
	}()
	fn(ev)
	b.delivered.Add(1)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.handlerPanics.Load(),
	}
}
