package models

import (
	"strings"
	"time"
)

// Sport identifies which league a matchup belongs to
type Sport string

const (
	SportMLB    Sport = "MLB"
	SportNBA    Sport = "NBA"
	SportNFL    Sport = "NFL"
	SportNHL    Sport = "NHL"
	SportSoccer Sport = "Soccer"
	SportNCAAB  Sport = "NCAAB"
)

// Synthetic matchup ID prefixes. Matchups carrying one of these never came
// from the live feed, so result checking must not hit the network for them.
const (
	SimulatedIDPrefix = "sim-"
	FallbackIDPrefix  = "fallback-"
)

// Emoji returns the emoji logo used for teams in this sport
func (s Sport) Emoji() string {
	switch s {
	case SportMLB:
		return "⚾"
	case SportNBA, SportNCAAB:
		return "🏀"
	case SportNFL:
		return "🏈"
	case SportNHL:
		return "🏒"
	case SportSoccer:
		return "⚽"
	default:
		return "❓"
	}
}

// LeaguePath returns the ESPN API sport/league path segment
func (s Sport) LeaguePath() string {
	switch s {
	case SportMLB:
		return "baseball/mlb"
	case SportNBA:
		return "basketball/nba"
	case SportNFL:
		return "football/nfl"
	case SportNHL:
		return "hockey/nhl"
	case SportSoccer:
		return "soccer/fifa.world"
	case SportNCAAB:
		return "basketball/mens-college-basketball"
	default:
		return "baseball/mlb"
	}
}

// DurationEstimate returns the typical wall-clock length of a game,
// used to schedule the post-game result check.
func (s Sport) DurationEstimate() time.Duration {
	switch s {
	case SportMLB:
		return 3 * time.Hour
	case SportNBA, SportNHL:
		return 150 * time.Minute
	case SportNFL:
		return 210 * time.Minute
	case SportSoccer, SportNCAAB:
		return 2 * time.Hour
	default:
		return 3 * time.Hour
	}
}

// CurrentSport maps a calendar month to the sport in season.
// MLB runs April-September; NBA October-March is checked before the
// overlapping NFL September-February window.
func CurrentSport(t time.Time) Sport {
	month := int(t.Month())
	switch {
	case month >= 4 && month <= 9:
		return SportMLB
	case month >= 10 || month <= 3:
		return SportNBA
	case month >= 9 || month <= 2:
		return SportNFL
	default:
		return SportMLB
	}
}

// Team is an immutable descriptive record built at matchup-creation time
type Team struct {
	Name   string    `json:"name" bson:"name"`
	Abbr   string    `json:"abbr" bson:"abbr"`
	Logo   string    `json:"logo" bson:"logo"`
	Colors [2]string `json:"colors" bson:"colors"`
}

// Matchup is one scheduled or simulated game a user predicts.
// Created once per calendar day; never mutated after creation.
type Matchup struct {
	ID        string    `json:"id" bson:"id"`
	HomeTeam  Team      `json:"homeTeam" bson:"homeTeam"`
	AwayTeam  Team      `json:"awayTeam" bson:"awayTeam"`
	Sport     Sport     `json:"sport" bson:"sport"`
	Venue     string    `json:"venue" bson:"venue"`
	StartTime time.Time `json:"startTime" bson:"startTime"`
	Status    string    `json:"status" bson:"status"`
}

// IsSimulated reports whether this matchup came from the seeded pool
func (m *Matchup) IsSimulated() bool {
	return strings.HasPrefix(m.ID, SimulatedIDPrefix)
}

// IsFallback reports whether this is the hardcoded last-resort placeholder
func (m *Matchup) IsFallback() bool {
	return strings.HasPrefix(m.ID, FallbackIDPrefix)
}

// HasLiveSource reports whether a real result can be fetched for this matchup
func (m *Matchup) HasLiveSource() bool {
	return !m.IsSimulated() && !m.IsFallback()
}

// EstimatedEnd returns the estimated game end based on the sport's typical duration
func (m *Matchup) EstimatedEnd() time.Time {
	return m.StartTime.Add(m.Sport.DurationEstimate())
}

// HasStarted reports whether the game is already underway at t
func (m *Matchup) HasStarted(t time.Time) bool {
	return !t.Before(m.StartTime)
}
