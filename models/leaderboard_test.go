package models

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, current, best, weeklyWins, accuracy int) LeaderboardEntry {
	return LeaderboardEntry{
		ID:            id,
		DisplayName:   "player-" + id,
		CurrentStreak: current,
		BestStreak:    best,
		WeeklyWins:    weeklyWins,
		Accuracy:      accuracy,
		LastActive:    time.Now(),
	}
}

func TestSortEntriesPerTab(t *testing.T) {
	entries := []LeaderboardEntry{
		entry("a", 2, 9, 1, 50),
		entry("b", 5, 5, 3, 40),
		entry("c", 5, 8, 3, 60),
	}

	tests := []struct {
		name string
		tab  LeaderboardTab
		want []string
	}{
		{"current streak, best breaks ties", TabCurrent, []string{"c", "b", "a"}},
		{"best streak, current breaks ties", TabBest, []string{"a", "c", "b"}},
		{"weekly wins, accuracy breaks ties", TabWeekly, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := make([]LeaderboardEntry, len(entries))
			copy(sorted, entries)
			SortEntries(sorted, tt.tab)

			got := make([]string, len(sorted))
			for i, e := range sorted {
				got[i] = e.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPruneStaleKeepsSelf(t *testing.T) {
	now := time.Now()
	fresh := entry("fresh", 1, 1, 0, 0)
	fresh.LastActive = now.Add(-time.Hour)

	stale := entry("stale", 9, 9, 0, 0)
	stale.LastActive = now.Add(-LeaderboardStaleAfter - time.Hour)

	staleSelf := entry("self", 3, 3, 0, 0)
	staleSelf.LastActive = now.Add(-LeaderboardStaleAfter - time.Hour)

	kept := PruneStale([]LeaderboardEntry{fresh, stale, staleSelf}, "self", now)

	ids := make([]string, len(kept))
	for i, e := range kept {
		ids[i] = e.ID
	}
	assert.ElementsMatch(t, []string{"fresh", "self"}, ids)
}

func TestFilterEntriesCaseInsensitive(t *testing.T) {
	entries := []LeaderboardEntry{
		{ID: "1", DisplayName: "FireTiger42"},
		{ID: "2", DisplayName: "shadowpicker"},
		{ID: "3", DisplayName: "GoldenEagle"},
	}

	assert.Len(t, FilterEntries(entries, "tiger"), 1)
	assert.Len(t, FilterEntries(entries, "GOLDEN"), 1)
	assert.Len(t, FilterEntries(entries, ""), 3)
	assert.Empty(t, FilterEntries(entries, "nomatch"))
}

func TestRankOf(t *testing.T) {
	entries := []LeaderboardEntry{{ID: "x"}, {ID: "y"}, {ID: "z"}}

	assert.Equal(t, 2, RankOf(entries, "y"))
	assert.Equal(t, 0, RankOf(entries, "missing"))
}

func TestEntryFromStateHashesUserID(t *testing.T) {
	now := time.Now()
	state := UserState{
		DisplayName:   "SwiftOracle7",
		CurrentStreak: 4,
		BestStreak:    6,
		TotalPicks:    10,
		CorrectPicks:  7,
		WeeklyStats:   WeeklyStats{Correct: 2},
	}

	e := EntryFromState("user-123", state, now)

	require.Equal(t, strconv.FormatInt(HashID("user-123"), 10), e.ID)
	assert.Equal(t, "SwiftOracle7", e.DisplayName)
	assert.Equal(t, 4, e.CurrentStreak)
	assert.Equal(t, 6, e.BestStreak)
	assert.Equal(t, 70, e.Accuracy)
	assert.Equal(t, 2, e.WeeklyWins)

	// same user always hashes to the same row
	again := EntryFromState("user-123", state, now.Add(time.Hour))
	assert.Equal(t, e.ID, again.ID)
}
