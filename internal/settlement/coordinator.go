package settlement

import (
	"time"

	"goalsignal/internal/models"
)

// Coordinator applies the evaluator across a full set of tracked signals
// against one snapshot of match updates.
type Coordinator struct {
	WindowMinutes int
}

// Settle re-evaluates every record whose match has an update in the
// snapshot; records without an update pass through unchanged. It returns
// the updated set plus the records that transitioned in this run, so the
// caller can record calibration observations and publish events exactly
// once per settlement.
//
// Re-running with the same inputs is a no-op for already-settled records:
// the evaluator's pending-only guard makes the whole sweep idempotent.
// Signals referencing the same match all see the identical update snapshot.
func (c *Coordinator) Settle(records []models.SignalRecord, updates map[string]models.MatchUpdate, now time.Time) ([]models.SignalRecord, []models.SignalRecord) {
	if len(records) == 0 {
		return records, nil
	}

	out := make([]models.SignalRecord, len(records))
	var settled []models.SignalRecord
	for i, rec := range records {
		upd, ok := updates[rec.MatchID]
		if !ok {
			out[i] = rec
			continue
		}
		next, changed := Evaluate(rec, upd, c.WindowMinutes, now)
		out[i] = next
		if changed {
			settled = append(settled, next)
		}
	}
	return out, settled
}
