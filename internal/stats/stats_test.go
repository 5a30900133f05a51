package stats

import (
	"testing"
	"time"

	"goalsignal/internal/models"
)

func makeRecords(hits, misses, pending int) []models.SignalRecord {
	var out []models.SignalRecord
	for i := 0; i < hits; i++ {
		out = append(out, models.SignalRecord{Status: models.StatusHit})
	}
	for i := 0; i < misses; i++ {
		out = append(out, models.SignalRecord{Status: models.StatusMiss})
	}
	for i := 0; i < pending; i++ {
		out = append(out, models.SignalRecord{Status: models.StatusPending})
	}
	return out
}

func TestSummarize_HitRate(t *testing.T) {
	s := Summarize(makeRecords(6, 4, 3))
	if s.Total != 13 {
		t.Fatalf("total=%d want=13", s.Total)
	}
	if s.Hits != 6 || s.Misses != 4 || s.Pending != 3 {
		t.Fatalf("counts=%+v", s)
	}
	if s.HitRate != 60 {
		t.Fatalf("hitRate=%d want=60", s.HitRate)
	}
}

func TestSummarize_NoSettledRecords(t *testing.T) {
	s := Summarize(makeRecords(0, 0, 5))
	if s.HitRate != 0 {
		t.Fatalf("hitRate=%d want=0 with no settled records", s.HitRate)
	}
	if s.Total != 5 || s.Pending != 5 {
		t.Fatalf("counts=%+v", s)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.HitRate != 0 {
		t.Fatalf("empty input must aggregate to zero: %+v", s)
	}
}

func TestSummarize_PendingInvariance(t *testing.T) {
	base := Summarize(makeRecords(2, 1, 0))
	padded := Summarize(makeRecords(2, 1, 50))
	if base.HitRate != padded.HitRate {
		t.Fatalf("hitRate changed with pending records: %d vs %d", base.HitRate, padded.HitRate)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	tests := []struct {
		hits, misses, want int
	}{
		{1, 2, 33},
		{2, 1, 67},
		{1, 7, 13}, // 12.5 rounds half away from zero
		{1, 1, 50},
	}
	for _, tt := range tests {
		s := Summarize(makeRecords(tt.hits, tt.misses, 0))
		if s.HitRate != tt.want {
			t.Fatalf("hits=%d misses=%d hitRate=%d want=%d", tt.hits, tt.misses, s.HitRate, tt.want)
		}
	}
}

func TestSummarize_ExpiredCountedSeparately(t *testing.T) {
	records := makeRecords(1, 1, 0)
	records = append(records, models.SignalRecord{Status: models.StatusExpired})
	s := Summarize(records)
	if s.Expired != 1 {
		t.Fatalf("expired=%d want=1", s.Expired)
	}
	if s.HitRate != 50 {
		t.Fatalf("expired records must not affect hitRate, got %d", s.HitRate)
	}
}

func TestSummarizeSince(t *testing.T) {
	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	records := []models.SignalRecord{
		{Status: models.StatusHit, TriggeredAt: dayStart.Add(2 * time.Hour)},
		{Status: models.StatusMiss, TriggeredAt: dayStart.Add(3 * time.Hour)},
		{Status: models.StatusMiss, TriggeredAt: dayStart.Add(-time.Hour)},
		{Status: models.StatusPending, TriggeredAt: dayStart},
	}

	s := SummarizeSince(records, dayStart)
	if s.Total != 3 {
		t.Fatalf("total=%d want=3 (yesterday's record excluded)", s.Total)
	}
	if s.HitRate != 50 {
		t.Fatalf("hitRate=%d want=50", s.HitRate)
	}

	all := SummarizeSince(records, time.Time{})
	if all.Total != 4 {
		t.Fatalf("zero bound must include everything, total=%d", all.Total)
	}
}
