package stream

import (
	"testing"

	"goalsignal/internal/models"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub(4, nil)
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(models.SignalRecord{ID: "sig-1", Status: models.StatusHit})

	select {
	case rec := <-ch:
		if rec.ID != "sig-1" {
			t.Fatalf("id=%s want=sig-1", rec.ID)
		}
	default:
		t.Fatalf("expected buffered event")
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub(1, nil)
	_, cancel := h.Subscribe()
	defer cancel()

	// Buffer size 1: the second publish must drop, not block.
	h.Publish(models.SignalRecord{ID: "a"})
	h.Publish(models.SignalRecord{ID: "b"})

	if got := h.dropped; got != 1 {
		t.Fatalf("dropped=%d want=1", got)
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	h := NewHub(4, nil)
	ch, cancel := h.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Fatalf("channel must be closed after cancel")
	}
	if h.subscriberCount() != 0 {
		t.Fatalf("subscriber not removed")
	}
	// Double-cancel is a no-op.
	cancel()
}
