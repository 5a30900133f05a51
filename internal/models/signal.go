package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Signal record status. A record leaves StatusPending at most once; settled
// records are never mutated again. StatusExpired is reserved for external
// invalidation (e.g. abandoned matches) and is never assigned by the
// settlement evaluator.
const (
	StatusPending = "pending"
	StatusHit     = "hit"
	StatusMiss    = "miss"
	StatusExpired = "expired"
)

// SignalRecord is one tracked goal prediction: a claim that a goal will be
// scored within the settlement window after TriggerMinute.
type SignalRecord struct {
	ID string `gorm:"type:varchar(64);primaryKey"`

	MatchID    string `gorm:"type:varchar(100);not null;index"`
	MatchLabel string `gorm:"type:varchar(200)"`

	// TriggeredAt is wall-clock time of signal creation and drives retention.
	// TriggerMinute is the match clock at creation and never changes.
	TriggeredAt   time.Time      `gorm:"type:timestamptz;not null;index"`
	TriggerMinute int            `gorm:"not null"`
	Strength      float64        `gorm:"not null"`
	Tier          string         `gorm:"type:varchar(20);index"`
	Reasons       datatypes.JSON `gorm:"type:jsonb"`

	// Market snapshot at trigger time. Odds is nil when no price was available.
	Odds *decimal.Decimal `gorm:"type:numeric(20,10)"`
	Line string           `gorm:"type:varchar(50)"`

	Status string `gorm:"type:varchar(10);not null;index;default:'pending'"`

	SettledAt      *time.Time `gorm:"type:timestamptz"`
	GoalMinute     *int
	SettlementNote string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (SignalRecord) TableName() string {
	return "signal_records"
}

func (s SignalRecord) Settled() bool {
	return s.Status != StatusPending
}

// ReasonList decodes the stored reasons. Corrupt payloads degrade to an
// empty list rather than surfacing a decode error.
func (s SignalRecord) ReasonList() []string {
	if len(s.Reasons) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(s.Reasons, &out); err != nil {
		return nil
	}
	return out
}
