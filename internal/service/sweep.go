package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"goalsignal/internal/calibration"
	"goalsignal/internal/config"
	"goalsignal/internal/models"
	"goalsignal/internal/repository"
	"goalsignal/internal/settlement"
	"goalsignal/internal/stream"
)

// MatchUpdateSupplier hands the sweep a snapshot of live match state for
// the requested matches. Matches missing from the result are skipped this
// round; their signals pass through unchanged.
type MatchUpdateSupplier interface {
	MatchUpdates(ctx context.Context, matchIDs []string) (map[string]models.MatchUpdate, error)
}

// SweepService runs one settlement pass: load tracked signals, fetch match
// updates for the pending ones, settle, record calibration observations,
// and write the set back with retention applied.
type SweepService struct {
	Repo     repository.Repository
	Supplier MatchUpdateSupplier
	Recorder *calibration.Recorder
	Hub      *stream.Hub
	Config   config.SettlementConfig
	Logger   *zap.Logger

	// Now is the wall-clock supplier; tests swap it.
	Now func() time.Time

	// mu serializes load-modify-save cycles. The store contract assumes a
	// single writer per sweep; concurrent cron fire + manual trigger must
	// not interleave.
	mu sync.Mutex
}

func (s *SweepService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowUTC()
	records, err := s.Repo.LoadSignals(ctx)
	if err != nil {
		// Store unavailability is the one condition worth surfacing.
		return err
	}

	updates := s.fetchUpdates(ctx, records)

	coordinator := &settlement.Coordinator{WindowMinutes: s.windowMinutes()}
	updated, settled := coordinator.Settle(records, updates, now)

	for _, rec := range settled {
		if s.Recorder != nil {
			// Calibration failures must not hold settlement back; the
			// recorder logs and the deterministic record ID makes a later
			// retry of the same signal harmless.
			_ = s.Recorder.Record(ctx, rec)
		}
		if s.Hub != nil {
			s.Hub.Publish(rec)
		}
	}

	cutoff := s.retentionCutoff(now)
	if err := s.Repo.SaveSignals(ctx, updated, cutoff); err != nil {
		return err
	}

	if s.Logger != nil && (len(settled) > 0 || countOlder(updated, cutoff) > 0) {
		hits := 0
		for _, rec := range settled {
			if rec.Status == models.StatusHit {
				hits++
			}
		}
		s.Logger.Info("settlement sweep complete",
			zap.Int("tracked", len(records)),
			zap.Int("updates", len(updates)),
			zap.Int("settled", len(settled)),
			zap.Int("hits", hits),
			zap.Int("misses", len(settled)-hits),
			zap.Int("purged", countOlder(updated, cutoff)),
		)
	}
	return nil
}

// fetchUpdates asks the supplier about every match that still has a pending
// signal. A feed failure degrades to an empty snapshot: settlement simply
// waits for the next sweep.
func (s *SweepService) fetchUpdates(ctx context.Context, records []models.SignalRecord) map[string]models.MatchUpdate {
	if s.Supplier == nil {
		return nil
	}
	var matchIDs []string
	seen := map[string]struct{}{}
	for _, rec := range records {
		if rec.Settled() {
			continue
		}
		if _, ok := seen[rec.MatchID]; ok {
			continue
		}
		seen[rec.MatchID] = struct{}{}
		matchIDs = append(matchIDs, rec.MatchID)
	}
	if len(matchIDs) == 0 {
		return nil
	}
	updates, err := s.Supplier.MatchUpdates(ctx, matchIDs)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("match update fetch failed", zap.Error(err))
		}
		return nil
	}
	return updates
}

func (s *SweepService) windowMinutes() int {
	if s.Config.WindowMinutes > 0 {
		return s.Config.WindowMinutes
	}
	return 10
}

func (s *SweepService) retentionCutoff(now time.Time) time.Time {
	if s.Config.RetentionDays <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -s.Config.RetentionDays)
}

func (s *SweepService) nowUTC() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func countOlder(records []models.SignalRecord, cutoff time.Time) int {
	if cutoff.IsZero() {
		return 0
	}
	n := 0
	for _, rec := range records {
		if rec.TriggeredAt.Before(cutoff) {
			n++
		}
	}
	return n
}
