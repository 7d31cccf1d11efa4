package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/host"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager fans engine events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Message]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a new listener. The returned func unsubscribes it.
func (sm *StreamManager) Subscribe() (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 64)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber, dropping it for slow ones.
func (sm *StreamManager) Broadcast(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			slog.Warn("SSE: client buffer full, dropping message", "event", msg.Event)
		}
	}
}

func (sm *StreamManager) publish(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Debug("SSE: event not serializable", "event", event, "error", err)
		return
	}
	sm.Broadcast(Message{Event: event, Data: string(data)})
}

type rebuildPayload struct {
	*domain.RebuildEvent
	Error string `json:"error,omitempty"`
}

type anomalyPayload struct {
	*domain.AnomalyEvent
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

// Hooks publishes rebuild and anomaly events. Ticks are not streamed.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRebuild: func(_ context.Context, e *domain.RebuildEvent) {
			p := rebuildPayload{RebuildEvent: e}
			if e.Err != nil {
				p.Error = e.Err.Error()
			}
			sm.publish(string(domain.EventRebuild), p)
		},
		OnAnomaly: func(_ context.Context, e *domain.AnomalyEvent) {
			p := anomalyPayload{AnomalyEvent: e, Value: domain.JSONValue(e.Value)}
			if e.Err != nil {
				p.Error = e.Err.Error()
			}
			sm.publish(string(domain.EventAnomaly), p)
		},
	}
}

// Diagnostics publishes Log records as "log" events.
func (sm *StreamManager) Diagnostics() host.Diagnostics {
	return host.DiagnosticsFunc(func(r host.Record) {
		sm.publish("log", r)
	})
}

// SubscribeEvents handles GET /events.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, unsubscribe := s.Streams.Subscribe()
	defer unsubscribe()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
