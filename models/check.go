package models

import "time"

// CheckState tracks where a pending outcome check is in its lifecycle.
type CheckState string

const (
	CheckScheduled CheckState = "scheduled"
	CheckChecking  CheckState = "checking"
	CheckResolved  CheckState = "resolved"
	CheckExhausted CheckState = "exhausted"
)

// MaxCheckAttempts is how many times a live game's outcome is fetched
// before the check gives up.
const MaxCheckAttempts = 3

// PendingCheck is a persisted outcome check for a single pick. Checks
// survive restarts so that picks made before a crash still resolve.
type PendingCheck struct {
	ID        string     `bson:"_id" json:"id"`
	UserKey   string     `bson:"userKey" json:"userKey"`
	Pick      Pick       `bson:"pick" json:"pick"`
	Matchup   Matchup    `bson:"matchup" json:"matchup"`
	Attempt   int        `bson:"attempt" json:"attempt"`
	NotBefore time.Time  `bson:"notBefore" json:"notBefore"`
	State     CheckState `bson:"state" json:"state"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Pending reports whether the check still needs to run.
func (c *PendingCheck) Pending() bool {
	return c.State == CheckScheduled || c.State == CheckChecking
}
