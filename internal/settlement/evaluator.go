package settlement

import (
	"fmt"
	"time"

	"goalsignal/internal/models"
)

// Evaluate runs the settlement state machine for one signal against one
// match update. It is pure: no I/O, no mutation of the input, cannot fail.
// Input validation (negative minutes etc.) is the creator's responsibility.
//
// A signal transitions out of pending at most once:
//   - A goal strictly after the trigger minute and at or before
//     triggerMinute+window settles it as a hit. The earliest qualifying goal
//     wins, and a hit always beats any miss condition arriving in the same
//     sweep.
//   - Otherwise a current minute past the window end settles it as a miss.
//   - Otherwise a finished match settles it as a miss even while the window
//     is still open; a finished match cannot produce further goals.
//   - Otherwise it stays pending.
//
// The evaluator never assigns StatusExpired; that value is reserved for
// external invalidation.
func Evaluate(sig models.SignalRecord, upd models.MatchUpdate, windowMinutes int, now time.Time) (models.SignalRecord, bool) {
	if sig.Settled() {
		return sig, false
	}

	windowEnd := sig.TriggerMinute + windowMinutes

	if goal, ok := earliestGoalInWindow(upd.Goals, sig.TriggerMinute, windowEnd); ok {
		minute := goal.Minute
		sig.Status = models.StatusHit
		sig.GoalMinute = &minute
		sig.SettledAt = &now
		sig.SettlementNote = fmt.Sprintf("goal at minute %d (%d after trigger)", minute, minute-sig.TriggerMinute)
		return sig, true
	}

	if upd.CurrentMinute > windowEnd {
		sig.Status = models.StatusMiss
		sig.SettledAt = &now
		sig.SettlementNote = "window elapsed without a goal"
		return sig, true
	}

	if upd.State == models.MatchFinished {
		sig.Status = models.StatusMiss
		sig.SettledAt = &now
		sig.SettlementNote = "match ended without a goal"
		return sig, true
	}

	return sig, false
}

// earliestGoalInWindow picks the lowest goal minute m with after < m <= until.
// The feed does not guarantee goal ordering, so every event is inspected.
func earliestGoalInWindow(goals []models.GoalEvent, after, until int) (models.GoalEvent, bool) {
	var best models.GoalEvent
	found := false
	for _, g := range goals {
		if g.Minute <= after || g.Minute > until {
			continue
		}
		if !found || g.Minute < best.Minute {
			best = g
			found = true
		}
	}
	return best, found
}
