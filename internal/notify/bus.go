// Package notify provides the transient in-process notification channel
// used for user feedback. Messages are never persisted; a restart drops
// everything pending.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity tags a notification for display.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// Notification is one active message in the bus.
type Notification struct {
	ID       string
	Severity Severity
	Text     string
}

// DefaultTTL is how long a message stays up before it removes itself.
const DefaultTTL = 3500 * time.Millisecond

// Listener observes the bus. It is invoked with a snapshot of the active
// messages after every append and every removal.
type Listener func(active []Notification)

// Bus is a session-scoped publish/subscribe mailbox. Expiry timers fire
// on their own goroutines, so the bus is the one component here that
// needs a mutex.
type Bus struct {
	mu        sync.Mutex
	ttl       time.Duration
	active    []Notification
	timers    map[string]*time.Timer
	listeners map[int]Listener
	nextSub   int
}

// NewBus returns a bus whose messages expire after DefaultTTL.
func NewBus() *Bus {
	return NewBusTTL(DefaultTTL)
}

// NewBusTTL returns a bus with a custom expiry, used by tests.
func NewBusTTL(ttl time.Duration) *Bus {
	return &Bus{
		ttl:       ttl,
		timers:    make(map[string]*time.Timer),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish appends a message, notifies all subscribers, and schedules its
// removal after the bus TTL.
func (b *Bus) Publish(text string, severity Severity) Notification {
	n := Notification{ID: uuid.NewString(), Severity: severity, Text: text}

	b.mu.Lock()
	b.active = append(b.active, n)
	b.timers[n.ID] = time.AfterFunc(b.ttl, func() {
		b.remove(n.ID)
	})
	snapshot, listeners := b.snapshotLocked(), b.listenersLocked()
	b.mu.Unlock()

	broadcast(listeners, snapshot)
	return n
}

// Dismiss removes a message immediately and cancels its expiry timer.
// Unknown ids are a no-op.
func (b *Bus) Dismiss(id string) {
	b.remove(id)
}

func (b *Bus) remove(id string) {
	b.mu.Lock()

	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}

	found := false
	for i := range b.active {
		if b.active[i].ID == id {
			b.active = append(b.active[:i], b.active[i+1:]...)
			found = true
			break
		}
	}

	var snapshot []Notification
	var listeners []Listener
	if found {
		snapshot, listeners = b.snapshotLocked(), b.listenersLocked()
	}
	b.mu.Unlock()

	if found {
		broadcast(listeners, snapshot)
	}
}

// Active returns a snapshot of the messages currently up, oldest first.
func (b *Bus) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Bus) snapshotLocked() []Notification {
	out := make([]Notification, len(b.active))
	copy(out, b.active)
	return out
}

func (b *Bus) listenersLocked() []Listener {
	out := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		out = append(out, fn)
	}
	return out
}

func broadcast(listeners []Listener, snapshot []Notification) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
