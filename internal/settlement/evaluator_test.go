package settlement

import (
	"testing"
	"time"

	"goalsignal/internal/models"
)

func pendingSignal(triggerMinute int) models.SignalRecord {
	return models.SignalRecord{
		ID:            "sig-1",
		MatchID:       "m-1",
		MatchLabel:    "Team A vs Team B",
		TriggeredAt:   time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
		TriggerMinute: triggerMinute,
		Strength:      0.72,
		Tier:          "strong",
		Status:        models.StatusPending,
	}
}

func TestEvaluate_GoalInWindowHits(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC)
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		MatchID:       "m-1",
		CurrentMinute: 78,
		Goals:         []models.GoalEvent{{Minute: 77, Side: "home"}},
		State:         models.MatchLive,
	}

	got, changed := Evaluate(sig, upd, 10, now)
	if !changed {
		t.Fatalf("expected transition")
	}
	if got.Status != models.StatusHit {
		t.Fatalf("status=%s want=hit", got.Status)
	}
	if got.GoalMinute == nil || *got.GoalMinute != 77 {
		t.Fatalf("goalMinute=%v want=77", got.GoalMinute)
	}
	if got.SettledAt == nil || !got.SettledAt.Equal(now) {
		t.Fatalf("settledAt=%v want=%v", got.SettledAt, now)
	}
	if got.SettlementNote == "" {
		t.Fatalf("expected settlement note")
	}
}

func TestEvaluate_EarliestQualifyingGoalWins(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 80,
		// Unordered on purpose; the feed does not sort goal events.
		Goals: []models.GoalEvent{
			{Minute: 79, Side: "away"},
			{Minute: 73, Side: "home"},
			{Minute: 76, Side: "home"},
		},
		State: models.MatchLive,
	}

	got, _ := Evaluate(sig, upd, 10, time.Now().UTC())
	if got.GoalMinute == nil || *got.GoalMinute != 73 {
		t.Fatalf("goalMinute=%v want=73", got.GoalMinute)
	}
}

func TestEvaluate_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		goalMinute int
		wantStatus string
	}{
		{"goal at trigger minute does not count", 70, models.StatusPending},
		{"goal just after trigger counts", 71, models.StatusHit},
		{"goal at window end counts", 80, models.StatusHit},
		{"goal past window end does not count", 81, models.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := pendingSignal(70)
			upd := models.MatchUpdate{
				CurrentMinute: 79,
				Goals:         []models.GoalEvent{{Minute: tt.goalMinute}},
				State:         models.MatchLive,
			}
			got, _ := Evaluate(sig, upd, 10, time.Now().UTC())
			if got.Status != tt.wantStatus {
				t.Fatalf("status=%s want=%s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestEvaluate_WindowElapsedMisses(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 81,
		State:         models.MatchLive,
	}

	got, changed := Evaluate(sig, upd, 10, time.Now().UTC())
	if !changed || got.Status != models.StatusMiss {
		t.Fatalf("status=%s changed=%v want miss transition", got.Status, changed)
	}
	if got.GoalMinute != nil {
		t.Fatalf("goalMinute=%v want=nil on miss", got.GoalMinute)
	}
	if got.SettlementNote != "window elapsed without a goal" {
		t.Fatalf("note=%q", got.SettlementNote)
	}
}

func TestEvaluate_CurrentMinuteAtWindowEndStaysPending(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 80,
		State:         models.MatchLive,
	}

	got, changed := Evaluate(sig, upd, 10, time.Now().UTC())
	if changed || got.Status != models.StatusPending {
		t.Fatalf("status=%s changed=%v want pending", got.Status, changed)
	}
}

func TestEvaluate_FinishedMatchMissesInsideWindow(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 75,
		State:         models.MatchFinished,
	}

	got, changed := Evaluate(sig, upd, 10, time.Now().UTC())
	if !changed || got.Status != models.StatusMiss {
		t.Fatalf("status=%s changed=%v want miss", got.Status, changed)
	}
	if got.SettlementNote != "match ended without a goal" {
		t.Fatalf("note=%q", got.SettlementNote)
	}
}

func TestEvaluate_GoalBeatsFinishAndElapsedInSameSweep(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 90,
		Goals:         []models.GoalEvent{{Minute: 78, Side: "away"}},
		State:         models.MatchFinished,
	}

	got, _ := Evaluate(sig, upd, 10, time.Now().UTC())
	if got.Status != models.StatusHit {
		t.Fatalf("status=%s want=hit; a window goal wins over finish/elapse", got.Status)
	}
	if got.GoalMinute == nil || *got.GoalMinute != 78 {
		t.Fatalf("goalMinute=%v want=78", got.GoalMinute)
	}
}

func TestEvaluate_PostponedMatchStaysPending(t *testing.T) {
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 72,
		State:         models.MatchPostponed,
	}

	_, changed := Evaluate(sig, upd, 10, time.Now().UTC())
	if changed {
		t.Fatalf("postponed match within window must not settle")
	}
}

func TestEvaluate_SettledRecordsAreImmutable(t *testing.T) {
	now := time.Now().UTC()
	sig := pendingSignal(70)
	upd := models.MatchUpdate{
		CurrentMinute: 78,
		Goals:         []models.GoalEvent{{Minute: 77}},
		State:         models.MatchLive,
	}
	settled, _ := Evaluate(sig, upd, 10, now)

	later := models.MatchUpdate{
		CurrentMinute: 95,
		Goals:         []models.GoalEvent{{Minute: 71}, {Minute: 77}},
		State:         models.MatchFinished,
	}
	got, changed := Evaluate(settled, later, 10, now.Add(time.Hour))
	if changed {
		t.Fatalf("settled record must not transition again")
	}
	if got.Status != settled.Status || got.SettlementNote != settled.SettlementNote {
		t.Fatalf("settled record mutated: %+v vs %+v", got, settled)
	}
	if got.GoalMinute == nil || *got.GoalMinute != *settled.GoalMinute {
		t.Fatalf("goalMinute changed on settled record")
	}
}
