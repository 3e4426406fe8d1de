package docstore

import (
	"context"
	"sync"
)

// hub fans change signals out to subscribers. Each subscriber channel holds at most
// one pending signal; bursts coalesce.
type hub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
	// idle, when set, runs after the last subscriber leaves.
	idle func()
}

func newHub() *hub {
	return &hub{subs: make(map[chan struct{}]struct{})}
}

func (h *hub) subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		empty := len(h.subs) == 0
		h.mu.Unlock()
		close(ch)
		if empty && h.idle != nil {
			h.idle()
		}
	}()
	return ch
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub) notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
