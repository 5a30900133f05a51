package models

import (
	"time"
)

// Match phase buckets used for calibration context.
const (
	PhaseMid       = "mid"
	PhaseLate      = "late"
	PhaseExtraLate = "extraLate"
)

// CalibrationRecord pairs a predicted signal strength with its realized
// outcome. Exactly one record exists per settled signal; the ID is derived
// deterministically from the signal ID. Records are append-only.
type CalibrationRecord struct {
	ID       string `gorm:"type:varchar(64);primaryKey"`
	SignalID string `gorm:"type:varchar(64);not null;uniqueIndex"`

	Strength      float64 `gorm:"not null"`
	TriggerMinute int     `gorm:"not null"`
	Outcome       bool    `gorm:"not null;index"`
	GoalMinute    *int

	Phase  string  `gorm:"type:varchar(20);not null;index"`
	League *string `gorm:"type:varchar(100)"`
	// ScoreDiff is not wired to a score feed yet and is always 0.
	ScoreDiff int `gorm:"not null;default:0"`

	SettledAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (CalibrationRecord) TableName() string {
	return "calibration_records"
}

// PhaseForMinute buckets a trigger minute into the calibration phase.
func PhaseForMinute(minute int) string {
	switch {
	case minute < 75:
		return PhaseMid
	case minute < 85:
		return PhaseLate
	default:
		return PhaseExtraLate
	}
}
