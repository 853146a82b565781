package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Leaderboard sizing and retention rules
const (
	LeaderboardMaxEntries  = 200              // stored collection cap after sort
	LeaderboardDisplaySize = 50               // entries surfaced to clients
	LeaderboardStaleAfter  = 30 * 24 * time.Hour // inactivity window before pruning
)

// LeaderboardTab selects the ranking criterion
type LeaderboardTab string

const (
	TabCurrent LeaderboardTab = "current"
	TabBest    LeaderboardTab = "best"
	TabWeekly  LeaderboardTab = "weekly"
)

// LeaderboardEntry is one user's row in the shared leaderboard, keyed by the
// hashed user ID. Each session only ever upserts its own entry.
type LeaderboardEntry struct {
	ID            string    `json:"id" bson:"_id"`
	DisplayName   string    `json:"displayName" bson:"displayName"`
	CurrentStreak int       `json:"currentStreak" bson:"currentStreak"`
	BestStreak    int       `json:"bestStreak" bson:"bestStreak"`
	TotalPicks    int       `json:"totalPicks" bson:"totalPicks"`
	CorrectPicks  int       `json:"correctPicks" bson:"correctPicks"`
	Accuracy      int       `json:"accuracy" bson:"accuracy"`
	WeeklyWins    int       `json:"weeklyWins" bson:"weeklyWins"`
	LastActive    time.Time `json:"lastActive" bson:"lastActive"`
	LastUpdated   time.Time `json:"lastUpdated" bson:"lastUpdated"`
}

// EntryFromState builds a user's leaderboard row from their current state
func EntryFromState(userID string, s UserState, now time.Time) LeaderboardEntry {
	return LeaderboardEntry{
		ID:            strconv.FormatInt(HashID(userID), 10),
		DisplayName:   s.DisplayName,
		CurrentStreak: s.CurrentStreak,
		BestStreak:    s.BestStreak,
		TotalPicks:    s.TotalPicks,
		CorrectPicks:  s.CorrectPicks,
		Accuracy:      s.Accuracy(),
		WeeklyWins:    s.WeeklyStats.Correct,
		LastActive:    now,
		LastUpdated:   now,
	}
}

// SortEntries orders entries in place by the tab's criterion.
// current: streak desc, best streak desc. best: best streak desc, streak desc.
// weekly: weekly wins desc, accuracy desc.
func SortEntries(entries []LeaderboardEntry, tab LeaderboardTab) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch tab {
		case TabBest:
			if a.BestStreak != b.BestStreak {
				return a.BestStreak > b.BestStreak
			}
			return a.CurrentStreak > b.CurrentStreak
		case TabWeekly:
			if a.WeeklyWins != b.WeeklyWins {
				return a.WeeklyWins > b.WeeklyWins
			}
			return a.Accuracy > b.Accuracy
		default:
			if a.CurrentStreak != b.CurrentStreak {
				return a.CurrentStreak > b.CurrentStreak
			}
			return a.BestStreak > b.BestStreak
		}
	})
}

// PruneStale drops entries inactive past the retention window. The acting
// user's own entry is always retained regardless of staleness.
func PruneStale(entries []LeaderboardEntry, selfID string, now time.Time) []LeaderboardEntry {
	cutoff := now.Add(-LeaderboardStaleAfter)
	kept := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == selfID || e.LastActive.After(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

// FilterEntries returns entries whose display name contains the search term
func FilterEntries(entries []LeaderboardEntry, search string) []LeaderboardEntry {
	if search == "" {
		return entries
	}
	needle := strings.ToLower(search)
	var out []LeaderboardEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayName), needle) {
			out = append(out, e)
		}
	}
	return out
}

// RankOf returns the 1-based rank of id in a sorted slice, or 0 if absent
func RankOf(entries []LeaderboardEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
