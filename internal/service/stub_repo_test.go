package service

import (
	"context"
	"sort"
	"time"

	"goalsignal/internal/models"
	"goalsignal/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It applies the same retention-on-save semantics as the gorm store.
type stubRepo struct {
	signals      []models.SignalRecord
	calibrations []models.CalibrationRecord

	loadErr error
	saveErr error
}

func (s *stubRepo) LoadSignals(ctx context.Context) ([]models.SignalRecord, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]models.SignalRecord, len(s.signals))
	copy(out, s.signals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TriggeredAt.After(out[j].TriggeredAt)
	})
	return out, nil
}

func (s *stubRepo) SaveSignals(ctx context.Context, records []models.SignalRecord, cutoff time.Time) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	kept := make([]models.SignalRecord, 0, len(records))
	for _, rec := range records {
		if !cutoff.IsZero() && rec.TriggeredAt.Before(cutoff) {
			continue
		}
		kept = append(kept, rec)
	}
	s.signals = kept
	return nil
}

func (s *stubRepo) AppendSignal(ctx context.Context, record *models.SignalRecord, cutoff time.Time) error {
	if record == nil {
		return nil
	}
	return s.SaveSignals(ctx, append([]models.SignalRecord{*record}, s.signals...), cutoff)
}

func (s *stubRepo) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.SignalRecord, error) {
	items, err := s.LoadSignals(ctx)
	if err != nil {
		return nil, err
	}
	if params.Limit > 0 && len(items) > params.Limit {
		items = items[:params.Limit]
	}
	return items, nil
}

func (s *stubRepo) CountSignals(ctx context.Context, params repository.ListSignalsParams) (int64, error) {
	return int64(len(s.signals)), nil
}

func (s *stubRepo) InsertCalibration(ctx context.Context, item *models.CalibrationRecord) error {
	if item == nil {
		return nil
	}
	for _, existing := range s.calibrations {
		if existing.ID == item.ID {
			return nil
		}
	}
	s.calibrations = append(s.calibrations, *item)
	return nil
}

func (s *stubRepo) ListCalibrations(ctx context.Context, params repository.ListCalibrationsParams) ([]models.CalibrationRecord, error) {
	out := make([]models.CalibrationRecord, len(s.calibrations))
	copy(out, s.calibrations)
	return out, nil
}

func (s *stubRepo) CountCalibrations(ctx context.Context, params repository.ListCalibrationsParams) (int64, error) {
	return int64(len(s.calibrations)), nil
}

// stubSupplier returns a fixed snapshot and records what was asked for.
type stubSupplier struct {
	updates   map[string]models.MatchUpdate
	err       error
	requested [][]string
}

func (s *stubSupplier) MatchUpdates(ctx context.Context, matchIDs []string) (map[string]models.MatchUpdate, error) {
	ids := make([]string, len(matchIDs))
	copy(ids, matchIDs)
	s.requested = append(s.requested, ids)
	if s.err != nil {
		return nil, s.err
	}
	return s.updates, nil
}
