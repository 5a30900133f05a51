package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goalsignal/internal/models"
	"goalsignal/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- signal records ----------------------------------------------------------

func (s *Store) LoadSignals(ctx context.Context) ([]models.SignalRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SignalRecord
	err := s.db.WithContext(ctx).
		Model(&models.SignalRecord{}).
		Order("triggered_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveSignals(ctx context.Context, records []models.SignalRecord, cutoff time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	kept := filterRetained(records, cutoff)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.SignalRecord{}).Error; err != nil {
			return err
		}
		return createInBatches(tx, kept, 200)
	})
}

func (s *Store) AppendSignal(ctx context.Context, record *models.SignalRecord, cutoff time.Time) error {
	if s == nil || s.db == nil || record == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cutoff.IsZero() || !record.TriggeredAt.Before(cutoff) {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(record).Error; err != nil {
				return err
			}
		}
		if cutoff.IsZero() {
			return nil
		}
		return tx.Where("triggered_at < ?", cutoff).
			Delete(&models.SignalRecord{}).Error
	})
}

func (s *Store) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.SignalRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applySignalFilters(s.db.WithContext(ctx).Model(&models.SignalRecord{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "triggered_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.SignalRecord
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountSignals(ctx context.Context, params repository.ListSignalsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applySignalFilters(s.db.WithContext(ctx).Model(&models.SignalRecord{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applySignalFilters(query *gorm.DB, params repository.ListSignalsParams) *gorm.DB {
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.MatchID != nil && strings.TrimSpace(*params.MatchID) != "" {
		query = query.Where("match_id = ?", strings.TrimSpace(*params.MatchID))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("triggered_at >= ?", *params.Since)
	}
	return query
}

// --- calibration records -----------------------------------------------------

func (s *Store) InsertCalibration(ctx context.Context, item *models.CalibrationRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	// ON CONFLICT DO NOTHING keeps the append-once guarantee cheap to hold
	// even if a sweep is retried after a partial failure.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (s *Store) ListCalibrations(ctx context.Context, params repository.ListCalibrationsParams) ([]models.CalibrationRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyCalibrationFilters(s.db.WithContext(ctx).Model(&models.CalibrationRecord{}), params)
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.CalibrationRecord
	err := query.Order("settled_at desc").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCalibrations(ctx context.Context, params repository.ListCalibrationsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyCalibrationFilters(s.db.WithContext(ctx).Model(&models.CalibrationRecord{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyCalibrationFilters(query *gorm.DB, params repository.ListCalibrationsParams) *gorm.DB {
	if params.Phase != nil && strings.TrimSpace(*params.Phase) != "" {
		query = query.Where("phase = ?", strings.TrimSpace(*params.Phase))
	}
	if params.Outcome != nil {
		query = query.Where("outcome = ?", *params.Outcome)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("settled_at >= ?", *params.Since)
	}
	return query
}

// --- helpers -----------------------------------------------------------------

func filterRetained(records []models.SignalRecord, cutoff time.Time) []models.SignalRecord {
	if cutoff.IsZero() {
		return records
	}
	kept := make([]models.SignalRecord, 0, len(records))
	for _, rec := range records {
		if rec.TriggeredAt.Before(cutoff) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.Create(items[i:end]).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
