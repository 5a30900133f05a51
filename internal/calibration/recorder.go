package calibration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goalsignal/internal/labeler"
	"goalsignal/internal/models"
	"goalsignal/internal/repository"
)

// recordNamespace makes calibration IDs a pure function of the signal ID,
// which keeps the signal-to-observation relationship 1:1 across retries.
var recordNamespace = uuid.MustParse("7b0c5cd2-9a3f-4f9d-8a61-3de1a20f44c1")

// Recorder appends one calibration observation per settled signal.
type Recorder struct {
	Repo    repository.Repository
	Leagues *labeler.LeagueExtractor
	Logger  *zap.Logger
}

// Record derives and stores the observation for a newly settled signal.
// The sweep calls this at most once per settlement event; the deterministic
// ID makes a duplicate call harmless.
func (r *Recorder) Record(ctx context.Context, sig models.SignalRecord) error {
	if r == nil || r.Repo == nil {
		return nil
	}
	if !sig.Settled() {
		return nil
	}
	item := Derive(sig, r.Leagues)
	if err := r.Repo.InsertCalibration(ctx, &item); err != nil {
		if r.Logger != nil {
			r.Logger.Warn("calibration insert failed",
				zap.String("signal_id", sig.ID),
				zap.Error(err),
			)
		}
		return err
	}
	return nil
}

// Derive builds the calibration record for a settled signal. Pure; exported
// for tests and offline recalibration tooling.
func Derive(sig models.SignalRecord, leagues *labeler.LeagueExtractor) models.CalibrationRecord {
	settledAt := time.Now().UTC()
	if sig.SettledAt != nil {
		settledAt = *sig.SettledAt
	}
	var league *string
	if leagues != nil {
		league = leagues.LeagueFromLabel(sig.MatchLabel)
	}
	return models.CalibrationRecord{
		ID:            RecordID(sig.ID),
		SignalID:      sig.ID,
		Strength:      sig.Strength,
		TriggerMinute: sig.TriggerMinute,
		Outcome:       sig.Status == models.StatusHit,
		GoalMinute:    sig.GoalMinute,
		Phase:         models.PhaseForMinute(sig.TriggerMinute),
		League:        league,
		ScoreDiff:     0,
		SettledAt:     settledAt,
	}
}

func RecordID(signalID string) string {
	return uuid.NewSHA1(recordNamespace, []byte(signalID)).String()
}
