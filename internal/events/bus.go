// Package events provides the fire-and-forget notification fan-out that
// decouples state mutation from push delivery. The core publishes named
// events; transports (websocket hub, tests) subscribe.
package events

import "sync"

// Event names published by the core.
const (
	ScanUpdate      = "scan_update"
	NewFinding      = "new_finding"
	FindingApproved = "finding_approved"
	ActivityUpdated = "activity_updated"
)

// Event is one notification with its JSON-serializable payload.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"data"`
}

// Publisher is the sink the core publishes notifications to. Delivery is
// best-effort; publishers never block the caller.
type Publisher interface {
	Publish(name string, payload interface{})
}

// Bus is an in-process Publisher that fans events out to subscribers.
type Bus struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber channel. The channel is buffered;
// a slow subscriber drops events rather than blocking publishers.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers the event to every subscriber that has buffer space.
func (b *Bus) Publish(name string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- Event{Name: name, Payload: payload}:
		default:
		}
	}
}

// Discard is a Publisher that drops everything. Useful in tests and for
// running the engine without a transport.
type Discard struct{}

// Publish implements Publisher.
func (Discard) Publish(string, interface{}) {}
