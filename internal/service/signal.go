package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"goalsignal/internal/models"
	"goalsignal/internal/repository"
	"goalsignal/internal/stats"
)

const maxReasons = 3

type CreateSignalInput struct {
	MatchID       string           `json:"matchId"`
	MatchLabel    string           `json:"matchLabel"`
	TriggerMinute int              `json:"triggerMinute"`
	Strength      float64          `json:"strength"`
	Tier          string           `json:"tier"`
	Reasons       []string         `json:"reasons"`
	Odds          *decimal.Decimal `json:"odds"`
	Line          string           `json:"line"`
}

// SignalService owns the signal record lifecycle around the settlement
// core: creation, recent listing, and hit-rate summaries.
type SignalService struct {
	Repo          repository.Repository
	RetentionDays int
	Logger        *zap.Logger

	// Now is the wall-clock supplier; tests swap it. Nil means UTC now.
	Now func() time.Time
}

// Create registers a new pending signal. Ranges are not validated here;
// trigger detection supplies sane values (minute >= 0, strength in model
// range) and owns that contract.
func (s *SignalService) Create(ctx context.Context, in CreateSignalInput) (*models.SignalRecord, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	now := s.now()
	reasons := in.Reasons
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	var reasonsJSON datatypes.JSON
	if len(reasons) > 0 {
		if raw, err := json.Marshal(reasons); err == nil {
			reasonsJSON = datatypes.JSON(raw)
		}
	}

	rec := &models.SignalRecord{
		ID:            uuid.NewString(),
		MatchID:       in.MatchID,
		MatchLabel:    in.MatchLabel,
		TriggeredAt:   now,
		TriggerMinute: in.TriggerMinute,
		Strength:      in.Strength,
		Tier:          in.Tier,
		Reasons:       reasonsJSON,
		Odds:          in.Odds,
		Line:          in.Line,
		Status:        models.StatusPending,
	}
	if err := s.Repo.AppendSignal(ctx, rec, s.retentionCutoff(now)); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("signal created",
			zap.String("signal_id", rec.ID),
			zap.String("match_id", rec.MatchID),
			zap.Int("trigger_minute", rec.TriggerMinute),
			zap.Float64("strength", rec.Strength),
		)
	}
	return rec, nil
}

func (s *SignalService) Recent(ctx context.Context, limit int) ([]models.SignalRecord, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListSignals(ctx, repository.ListSignalsParams{
		Limit:   limit,
		OrderBy: "triggered_at",
	})
}

// Stats summarizes the full tracked set, optionally restricted to records
// triggered at or after since.
func (s *SignalService) Stats(ctx context.Context, since *time.Time) (stats.Summary, error) {
	if s == nil || s.Repo == nil {
		return stats.Summary{}, nil
	}
	records, err := s.Repo.LoadSignals(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	if since != nil {
		return stats.SummarizeSince(records, *since), nil
	}
	return stats.Summarize(records), nil
}

func (s *SignalService) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *SignalService) retentionCutoff(now time.Time) time.Time {
	if s == nil || s.RetentionDays <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -s.RetentionDays)
}
