package repository

import (
	"context"
	"time"

	"goalsignal/internal/models"
)

type ListSignalsParams struct {
	Limit   int
	Offset  int
	Status  *string
	MatchID *string
	Since   *time.Time
	OrderBy string
	Asc     *bool
}

type ListCalibrationsParams struct {
	Limit   int
	Offset  int
	Phase   *string
	Outcome *bool
	Since   *time.Time
}

// Repository is the injected store handle for signal and calibration
// records. Two independent instances (tests, multiple tenants) never share
// state because each handle owns its own database connection.
type Repository interface {
	// LoadSignals returns the full tracked set, most-recent-first by trigger
	// time. It only fails when the store itself is unreachable; partial row
	// corruption degrades at field decode (see models.SignalRecord).
	LoadSignals(ctx context.Context) ([]models.SignalRecord, error)

	// SaveSignals overwrites the stored set in one transaction, dropping any
	// record whose trigger time is older than cutoff. Retention is enforced
	// on every save, never on load.
	SaveSignals(ctx context.Context, records []models.SignalRecord, cutoff time.Time) error

	// AppendSignal is prepend-then-save: the record is added and the same
	// retention filtering as SaveSignals runs in the same transaction.
	AppendSignal(ctx context.Context, record *models.SignalRecord, cutoff time.Time) error

	ListSignals(ctx context.Context, params ListSignalsParams) ([]models.SignalRecord, error)
	CountSignals(ctx context.Context, params ListSignalsParams) (int64, error)

	// Calibration log (append-only, no retention).
	InsertCalibration(ctx context.Context, item *models.CalibrationRecord) error
	ListCalibrations(ctx context.Context, params ListCalibrationsParams) ([]models.CalibrationRecord, error)
	CountCalibrations(ctx context.Context, params ListCalibrationsParams) (int64, error)
}
