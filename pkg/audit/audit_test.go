package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	batches [][]any
	fail    bool
	closed  bool
}

func (m *memStore) insert(_ context.Context, docs []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("down")
	}
	m.batches = append(m.batches, docs)
	return nil
}

func (m *memStore) close(context.Context) error {
	m.closed = true
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

func TestWriterBatchesAndFlushesOnClose(t *testing.T) {
	s := &memStore{}
	w := newWriter(s, time.Hour)

	for i := 0; i < batchSize+3; i++ {
		w.Record(Entry{Event: "booking.created"})
	}
	require.Eventually(t, func() bool { return s.count() == batchSize }, time.Second, 5*time.Millisecond)

	w.Close()
	w.Close()
	assert.Equal(t, batchSize+3, s.count())
	assert.True(t, s.closed)
}

func TestWriterFlushesOnTick(t *testing.T) {
	s := &memStore{}
	w := newWriter(s, 10*time.Millisecond)
	defer w.Close()

	w.Record(Entry{Event: "room.created"})
	assert.Eventually(t, func() bool { return s.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWriterSurvivesStoreFailure(t *testing.T) {
	s := &memStore{fail: true}
	w := newWriter(s, 5*time.Millisecond)
	w.Record(Entry{Event: "x"})
	time.Sleep(20 * time.Millisecond)
	w.Close()
	assert.Zero(t, s.count())
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	e := NewEntry("booking.created", at, struct {
		ID     string `json:"id"`
		Nights int    `json:"nights"`
	}{"b1", 3})
	assert.Equal(t, map[string]any{"id": "b1", "nights": float64(3)}, e.Payload)

	e = NewEntry("room.deleted", at, "r1")
	assert.Equal(t, map[string]any{"value": "r1"}, e.Payload)

	e = NewEntry("ping", at, nil)
	assert.Nil(t, e.Payload)
	assert.Equal(t, at, e.At)
}

func TestNewEntryKeepsDecodeError(t *testing.T) {
	e := NewEntry("quote", time.Now(), json.Number("1e400"))
	require.Contains(t, e.Payload, "error")
	assert.NotContains(t, e.Payload, "value")
	assert.NotEmpty(t, e.Payload["error"])
}
