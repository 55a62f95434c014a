package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

const bufferSize = 10

// Event is one message pushed to an employee's open streams.
type Event struct {
	EmployeeID string
	Event      string
	Data       any
}

// WriteTo renders the event in text/event-stream framing.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event data: %w", err)
	}
	n, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Event, payload)
	return int64(n), err
}

// Hub fans events out to subscribers, keyed by employee ID.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for employeeID. The returned cleanup closes the
// channel and must be called exactly once.
func (h *Hub) Subscribe(employeeID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[employeeID], ch)
			close(ch)
			if len(h.subscribers[employeeID]) == 0 {
				delete(h.subscribers, employeeID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every stream of employeeID and returns how many
// received it. Full buffers are skipped so a slow client never blocks.
func (h *Hub) Publish(employeeID string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.EmployeeID = employeeID
	delivered := 0
	for ch := range h.subscribers[employeeID] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[employeeID])
}
