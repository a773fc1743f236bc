package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// Event is one message on the live event stream.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans engine notifications out to SSE subscribers. It implements
// domain.Notifier, so it can sit directly behind the engine; a slow or
// gone subscriber is skipped, never blocked on.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an event hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Broadcast sends an event to all subscribers, dropping it for any
// subscriber whose buffer is full.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// LevelUp implements domain.Notifier.
func (h *Hub) LevelUp(level int) {
	h.Broadcast(Event{Type: "levelUp", Payload: map[string]int{"level": level}})
}

// InterventionRequired implements domain.Notifier.
func (h *Hub) InterventionRequired(prompt string, a domain.Analysis) {
	h.Broadcast(Event{Type: "interventionRequired", Payload: map[string]interface{}{
		"prompt":   prompt,
		"analysis": a,
	}})
}

// HandleEventsSSE streams events to one client until it disconnects.
func (h *Hub) HandleEventsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Initial comment so clients know the stream is live.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
