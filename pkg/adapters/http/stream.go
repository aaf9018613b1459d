package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/exinc/pkg/domain"
)

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a listener. The returned function unregisters it and closes the channel.
func (sm *StreamManager) Subscribe() (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 64)
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

// Broadcast sends e to every subscriber. Slow subscribers miss messages.
func (sm *StreamManager) Broadcast(e Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// Hooks returns hooks broadcasting the traversal of the expansion id.
func (sm *StreamManager) Hooks(id string) domain.Hooks {
	return domain.Hooks{
		OnFileEnter: func(_ context.Context, e *domain.FileEvent) {
			sm.Broadcast(Event{Type: EventTypeFileEnter, ExpansionId: id, File: mapFileEventFromDomain(e)})
		},
		OnFileLeave: func(_ context.Context, e *domain.FileEvent) {
			sm.Broadcast(Event{Type: EventTypeFileLeave, ExpansionId: id, File: mapFileEventFromDomain(e)})
		},
		OnDiagnostic: func(_ context.Context, d domain.Diagnostic) {
			diag := mapDiagnosticFromDomain(d)
			sm.Broadcast(Event{Type: EventTypeDiagnostic, ExpansionId: id, Diagnostic: &diag})
		},
	}
}

// Finish broadcasts the end of the expansion id. The outcome carries no output.
func (sm *StreamManager) Finish(id string, res domain.Result) {
	report := mapReportFromDomain(domain.NewReport(&domain.Record{ID: id, Result: res}))
	report.Output = nil
	sm.Broadcast(Event{Type: EventTypeFinished, ExpansionId: id, Outcome: &report})
}

// SubscribeEvents handles the GET /v1/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if params.ExpansionId != nil && *params.ExpansionId != e.ExpansionId {
				continue
			}
			data, err := json.Marshal(e)
			if err != nil {
				s.logger.Error("SSE event encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
