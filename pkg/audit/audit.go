// Package audit keeps an activity trail of domain events. Entries are
// queued without blocking the caller and written in batches by a single
// background goroutine.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shashiranjanraj/staybook/pkg/logger"
)

const (
	queueSize  = 4096
	batchSize  = 50
	drainTick  = 2 * time.Second
	writeLimit = 5 * time.Second
)

// Entry is one recorded event. Payload holds the event's JSON form.
type Entry struct {
	Event   string         `bson:"event"   json:"event"`
	At      time.Time      `bson:"at"      json:"at"`
	Payload map[string]any `bson:"payload" json:"payload,omitempty"`
}

// NewEntry converts payload through JSON so stored entries match the API.
// Payloads that are not JSON objects are stored under "value".
func NewEntry(event string, at time.Time, payload any) Entry {
	e := Entry{Event: event, At: at}
	if payload == nil {
		return e
	}
	data, err := json.Marshal(payload)
	if err != nil {
		e.Payload = map[string]any{"error": err.Error()}
		return e
	}
	if json.Unmarshal(data, &e.Payload) != nil {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			e.Payload = map[string]any{"error": err.Error()}
			return e
		}
		e.Payload = map[string]any{"value": v}
	}
	return e
}

type store interface {
	insert(ctx context.Context, docs []any) error
	close(ctx context.Context) error
}

// Writer batches entries into a store.
type Writer struct {
	store store
	queue chan Entry
	done  chan struct{}
	idle  chan struct{}
	once  sync.Once
	tick  time.Duration
}

func newWriter(s store, tick time.Duration) *Writer {
	w := &Writer{
		store: s,
		queue: make(chan Entry, queueSize),
		done:  make(chan struct{}),
		idle:  make(chan struct{}),
		tick:  tick,
	}
	go w.drain()
	return w
}

// Record queues e. When the queue is full the entry is dropped.
func (w *Writer) Record(e Entry) {
	select {
	case w.queue <- e:
	default:
		logger.Warn("audit: queue full, entry dropped", "event", e.Event)
	}
}

// Close flushes queued entries and releases the store. Safe to call twice.
func (w *Writer) Close() {
	w.once.Do(func() {
		close(w.done)
		<-w.idle

		ctx, cancel := context.WithTimeout(context.Background(), writeLimit)
		defer cancel()
		if err := w.store.close(ctx); err != nil {
			logger.Warn("audit: close", "error", err)
		}
	})
}

func (w *Writer) drain() {
	defer close(w.idle)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	batch := make([]any, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeLimit)
		defer cancel()
		if err := w.store.insert(ctx, batch); err != nil {
			logger.Warn("audit: write failed", "entries", len(batch), "error", err)
		}
		batch = make([]any, 0, batchSize)
	}

	for {
		select {
		case e := <-w.queue:
			batch = append(batch, e)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.done:
			for len(w.queue) > 0 {
				batch = append(batch, <-w.queue)
			}
			flush()
			return
		}
	}
}
