package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"goalsignal/internal/models"
)

// Hub fans settled signal records out to subscribers (the websocket layer,
// future alerting). Publishing never blocks the settlement sweep: slow
// subscribers lose events and the drop count is logged periodically.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan models.SignalRecord
	nextID uint64

	buf     int
	logger  *zap.Logger
	dropped uint64
}

func NewHub(buf int, logger *zap.Logger) *Hub {
	if buf <= 0 {
		buf = 16
	}
	return &Hub{
		subs:   map[uint64]chan models.SignalRecord{},
		buf:    buf,
		logger: logger,
	}
}

// Subscribe returns a channel of settlement events plus a cancel func that
// the subscriber must call when done.
func (h *Hub) Subscribe() (<-chan models.SignalRecord, func()) {
	ch := make(chan models.SignalRecord, h.buf)
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(rec models.SignalRecord) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- rec:
		default:
			atomic.AddUint64(&h.dropped, 1)
		}
	}
}

// Run only reports drop stats; fan-out itself is driven by Publish calls.
func (h *Hub) Run(ctx context.Context) error {
	if h == nil {
		return nil
	}
	t := time.NewTicker(60 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if h.logger != nil {
				h.logger.Info("stream hub stats",
					zap.Uint64("dropped_fanout", atomic.LoadUint64(&h.dropped)),
					zap.Int("subscribers", h.subscriberCount()),
				)
			}
		}
	}
}

func (h *Hub) subscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
