// Package event is an in-process publish/subscribe bus. Services fire
// domain events ("booking.created", "room.deleted"); listeners such as the
// admin websocket feed react to them.
package event

import (
	"sync"
	"time"

	"github.com/shashiranjanraj/staybook/pkg/logger"
)

// Event is one published occurrence.
type Event struct {
	Name    string    `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Handler receives events it subscribed to.
type Handler func(e Event)

// Bus dispatches events to listeners. The zero value is not usable; call
// New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wildcard []Handler
	now      func() time.Time
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}, now: time.Now}
}

// Listen registers handler for name. The name "*" receives every event.
func (b *Bus) Listen(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if name == "*" {
		b.wildcard = append(b.wildcard, handler)
		return
	}
	b.handlers[name] = append(b.handlers[name], handler)
}

func (b *Bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, 0, len(b.handlers[name])+len(b.wildcard))
	hs = append(hs, b.handlers[name]...)
	return append(hs, b.wildcard...)
}

// Fire dispatches synchronously. A panicking listener is logged and does
// not stop the others.
func (b *Bus) Fire(name string, payload any) {
	e := Event{Name: name, Payload: payload, At: b.now()}
	for _, h := range b.snapshot(name) {
		call(h, e)
	}
}

// FireAsync dispatches each listener on its own goroutine.
func (b *Bus) FireAsync(name string, payload any) {
	e := Event{Name: name, Payload: payload, At: b.now()}
	for _, h := range b.snapshot(name) {
		go call(h, e)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
	b.wildcard = nil
}

func call(h Handler, e Event) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("event: listener panicked", "event", e.Name, "panic", rec)
		}
	}()
	h(e)
}
