package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/growlog/internal/logger"
)

// seqPoller watches a change sequence on behalf of every subscriber of a hub. One
// poll loop runs while the hub has subscribers and stops when the last one leaves.
type seqPoller struct {
	hub   *hub
	every time.Duration
	read  func(ctx context.Context) (int64, error)

	mu   sync.Mutex
	stop context.CancelFunc
}

func newSeqPoller(h *hub, every time.Duration, read func(ctx context.Context) (int64, error)) *seqPoller {
	p := &seqPoller{hub: h, every: every, read: read}
	h.idle = p.stopIfIdle
	return p
}

func (p *seqPoller) subscribe(ctx context.Context) (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		last, err := p.read(ctx)
		if err != nil {
			return nil, err
		}
		pollCtx, stop := context.WithCancel(context.Background())
		p.stop = stop
		go p.run(pollCtx, last)
	}
	return p.hub.subscribe(ctx), nil
}

func (p *seqPoller) run(ctx context.Context, last int64) {
	ticker := time.NewTicker(p.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seq, err := p.read(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Change log poll failed", "error", err)
				}
				continue
			}
			if seq != last {
				last = seq
				p.hub.notify()
			}
		}
	}
}

func (p *seqPoller) stopIfIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil && p.hub.len() == 0 {
		p.stop()
		p.stop = nil
	}
}

func (p *seqPoller) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *seqPoller) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}
