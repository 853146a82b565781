package models

import (
	"fmt"
	"time"
)

// Side identifies which team a user picked
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideTie  Side = "tie" // only valid as a GameResult winner
)

// Opponent returns the other pickable side. Tie has no opponent and
// maps to itself.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return s
}

// Pick is a user's choice of side for the day's matchup.
// Created once per calendar day; superseded, never mutated, by the next day's pick.
type Pick struct {
	MatchupID    string    `json:"matchupId" bson:"matchupId"`
	SelectedTeam Side      `json:"selectedTeam" bson:"selectedTeam"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	Date         string    `json:"date" bson:"date"` // calendar-day string, see calendar.go
}

// ResultTeam is the name/abbreviation/score triple for one side of a final
type ResultTeam struct {
	Name  string `json:"name" bson:"name"`
	Abbr  string `json:"abbr" bson:"abbr"`
	Score int    `json:"score" bson:"score"`
}

// GameResult is the final outcome of a completed game
type GameResult struct {
	GameID      string     `json:"gameId" bson:"gameId"`
	HomeScore   int        `json:"homeScore" bson:"homeScore"`
	AwayScore   int        `json:"awayScore" bson:"awayScore"`
	Winner      Side       `json:"winner" bson:"winner"`
	HomeTeam    ResultTeam `json:"homeTeam" bson:"homeTeam"`
	AwayTeam    ResultTeam `json:"awayTeam" bson:"awayTeam"`
	CompletedAt time.Time  `json:"completedAt" bson:"completedAt"`
}

// ScoreString returns the final score formatted home-away
func (r *GameResult) ScoreString() string {
	return fmt.Sprintf("%d-%d", r.HomeScore, r.AwayScore)
}

// WinningTeam returns the winner's team record, or the home team on a tie
func (r *GameResult) WinningTeam() ResultTeam {
	if r.Winner == SideAway {
		return r.AwayTeam
	}
	return r.HomeTeam
}

// ResultRecord is one entry in a user's rolling game-result history
type ResultRecord struct {
	GameID       string    `json:"gameId" bson:"gameId"`
	UserPick     Side      `json:"userPick" bson:"userPick"`
	ActualWinner Side      `json:"actualWinner" bson:"actualWinner"`
	IsCorrect    bool      `json:"isCorrect" bson:"isCorrect"`
	FinalScore   string    `json:"finalScore" bson:"finalScore"`
	CheckedAt    time.Time `json:"checkedAt" bson:"checkedAt"`
	GameDate     time.Time `json:"gameDate" bson:"gameDate"`
}

// MaxResultHistory bounds the rolling result history kept per user
const MaxResultHistory = 10

// AppendResult appends a record to a history slice, keeping only the most recent entries
func AppendResult(history []ResultRecord, rec ResultRecord) []ResultRecord {
	history = append(history, rec)
	if len(history) > MaxResultHistory {
		history = history[len(history)-MaxResultHistory:]
	}
	return history
}
