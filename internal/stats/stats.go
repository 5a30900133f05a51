package stats

import (
	"math"
	"time"

	"goalsignal/internal/models"
)

// Summary aggregates settlement outcomes over a set of signal records.
// HitRate is an integer percentage over settled records only; pending and
// expired records never influence it.
type Summary struct {
	Total   int `json:"total"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Pending int `json:"pending"`
	Expired int `json:"expired"`
	HitRate int `json:"hitRate"`
}

func Summarize(records []models.SignalRecord) Summary {
	var s Summary
	for _, rec := range records {
		s.Total++
		switch rec.Status {
		case models.StatusHit:
			s.Hits++
		case models.StatusMiss:
			s.Misses++
		case models.StatusExpired:
			s.Expired++
		default:
			s.Pending++
		}
	}
	if settled := s.Hits + s.Misses; settled > 0 {
		s.HitRate = int(math.Round(float64(s.Hits) / float64(settled) * 100))
	}
	return s
}

// SummarizeSince restricts the input to records triggered at or after the
// lower bound before aggregating. There is no upper bound; the caller scopes
// the window.
func SummarizeSince(records []models.SignalRecord, since time.Time) Summary {
	if since.IsZero() {
		return Summarize(records)
	}
	scoped := make([]models.SignalRecord, 0, len(records))
	for _, rec := range records {
		if rec.TriggeredAt.Before(since) {
			continue
		}
		scoped = append(scoped, rec)
	}
	return Summarize(scoped)
}
