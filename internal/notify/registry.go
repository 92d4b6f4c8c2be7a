package notify

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// EventKind says what changed in a registry.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
)

func (k EventKind) String() string {
	if k == EventRemoved {
		return "removed"
	}
	return "added"
}

// Event is delivered to subscribers after every change. Active is a
// snapshot of the live notifications, oldest first.
type Event struct {
	Kind         EventKind
	Notification Notification
	Active       []Notification
}

// Registry holds live notifications and the functions observing them. It
// is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	items  []Notification
	subs   map[int64]func(Event)
	subSeq atomic.Int64
	closed atomic.Bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[int64]func(Event))}
}

// Subscribe registers fn for every later change. Calling the returned
// function unregisters it; calling it again is a no-op.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	if r.closed.Load() {
		return func() {}
	}
	id := r.subSeq.Inc()

	r.mu.Lock()
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Publish adds n and notifies subscribers. An empty ID is replaced by a
// fresh one. It returns the ID, or "" once the registry is closed.
func (r *Registry) Publish(n Notification) ID {
	if r.closed.Load() {
		return ""
	}
	if n.ID == "" {
		n.ID = ID(uuid.NewString())
	}
	if n.Type == "" {
		n.Type = TypeStandard
	}

	r.mu.Lock()
	r.items = slices.DeleteFunc(r.items, func(x Notification) bool { return x.ID == n.ID })
	r.items = append(r.items, n)
	ev := Event{Kind: EventAdded, Notification: n, Active: slices.Clone(r.items)}
	subs := r.subscribers()
	r.mu.Unlock()

	dispatch(subs, ev)
	return n.ID
}

// Remove dismisses the notification with id. It reports whether it was
// live.
func (r *Registry) Remove(id ID) bool {
	r.mu.Lock()
	i := slices.IndexFunc(r.items, func(x Notification) bool { return x.ID == id })
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	removed := r.items[i]
	r.items = slices.Delete(r.items, i, i+1)
	ev := Event{Kind: EventRemoved, Notification: removed, Active: slices.Clone(r.items)}
	subs := r.subscribers()
	r.mu.Unlock()

	dispatch(subs, ev)
	return true
}

// Active returns the live notifications, oldest first.
func (r *Registry) Active() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// Close drops every subscriber. Later publishes are ignored.
func (r *Registry) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	clear(r.subs)
	r.mu.Unlock()
}

// subscribers snapshots the observers in subscription order. Callers hold
// r.mu.
func (r *Registry) subscribers() []func(Event) {
	ids := make([]int64, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(Event), len(ids))
	for i, id := range ids {
		out[i] = r.subs[id]
	}
	return out
}

// dispatch runs outside the lock so observers may call back into the
// registry.
func dispatch(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
