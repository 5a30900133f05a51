package models

// Match lifecycle states reported by the live-score feed.
const (
	MatchLive      = "live"
	MatchFinished  = "finished"
	MatchPostponed = "postponed"
)

// GoalEvent is one goal observed in a match. Ephemeral: supplied by the feed
// on every sweep, never persisted.
type GoalEvent struct {
	Minute int    `json:"minute"`
	Side   string `json:"side"`
}

// MatchUpdate is the per-match snapshot a settlement sweep works against.
// Callers must feed monotonically non-decreasing CurrentMinute per match
// across sweeps.
type MatchUpdate struct {
	MatchID       string      `json:"matchId"`
	CurrentMinute int         `json:"currentMinute"`
	Goals         []GoalEvent `json:"goals"`
	State         string      `json:"state"`
}
