package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClearsStalePick(t *testing.T) {
	yesterday := time.Date(2026, time.June, 10, 20, 0, 0, 0, time.Local)
	today := yesterday.AddDate(0, 0, 1)

	state := NewUserState(yesterday)
	state = state.RecordPick(Pick{
		MatchupID:    "sim-nyy-vs-bos",
		SelectedTeam: SideHome,
		Timestamp:    yesterday,
		Date:         DayString(yesterday),
	})
	require.NotNil(t, state.TodaysPick)

	normalized := state.Normalize(today)

	assert.Nil(t, normalized.TodaysPick)
	assert.Equal(t, DayString(today), normalized.LastPickDate)
	// counters survive the day boundary
	assert.Equal(t, 1, normalized.TotalPicks)
}

func TestNormalizeSameDayIsNoOp(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.Local)
	later := now.Add(8 * time.Hour)

	state := NewUserState(now)
	state = state.RecordPick(Pick{MatchupID: "sim-lal-vs-bos", SelectedTeam: SideAway, Date: DayString(now)})

	normalized := state.Normalize(later)

	require.NotNil(t, normalized.TodaysPick)
	assert.Equal(t, "sim-lal-vs-bos", normalized.TodaysPick.MatchupID)
	assert.Equal(t, state, normalized)
}

func TestNormalizeIdempotent(t *testing.T) {
	now := time.Date(2026, time.June, 11, 13, 0, 0, 0, time.Local)

	state := UserState{LastPickDate: "Tue Jun 09 2026", WeeklyStats: WeeklyStats{Picks: 4, Correct: 2, WeekStart: "stale"}}
	once := state.Normalize(now)
	twice := once.Normalize(now)

	assert.Equal(t, once, twice)
}

func TestNormalizeResetsWeeklyStatsOnNewWeek(t *testing.T) {
	// Sunday evening and the following Monday morning
	sunday := time.Date(2026, time.September, 6, 21, 0, 0, 0, time.Local)
	monday := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.Local)

	state := NewUserState(sunday)
	state.WeeklyStats.Picks = 5
	state.WeeklyStats.Correct = 3

	normalized := state.Normalize(monday)

	assert.Equal(t, 0, normalized.WeeklyStats.Picks)
	assert.Equal(t, 0, normalized.WeeklyStats.Correct)
	assert.Equal(t, WeekStart(monday), normalized.WeeklyStats.WeekStart)
}

func TestApplyResultStreakAccounting(t *testing.T) {
	state := UserState{}

	// three wins, one loss, two wins
	outcomes := []bool{true, true, true, false, true, true}
	for _, correct := range outcomes {
		state.TotalPicks++
		state = state.ApplyResult(correct)
		assert.GreaterOrEqual(t, state.BestStreak, state.CurrentStreak)
		assert.LessOrEqual(t, state.CorrectPicks, state.TotalPicks)
	}

	assert.Equal(t, 2, state.CurrentStreak)
	assert.Equal(t, 3, state.BestStreak)
	assert.Equal(t, 5, state.CorrectPicks)
}

func TestApplyResultWrongResetsOnlyCurrentStreak(t *testing.T) {
	state := UserState{CurrentStreak: 7, BestStreak: 7, CorrectPicks: 7, TotalPicks: 7}

	state = state.ApplyResult(false)

	assert.Equal(t, 0, state.CurrentStreak)
	assert.Equal(t, 7, state.BestStreak)
	assert.Equal(t, 7, state.CorrectPicks)
}

func TestHasPickedToday(t *testing.T) {
	now := time.Date(2026, time.June, 12, 10, 0, 0, 0, time.Local)
	today := DayString(now)
	pick := Pick{MatchupID: "sim-dal-vs-phi", SelectedTeam: SideHome, Date: today}

	state := NewUserState(now).RecordPick(pick)

	assert.True(t, state.HasPickedToday("sim-dal-vs-phi", today))
	assert.False(t, state.HasPickedToday("sim-dal-vs-phi", DayString(now.AddDate(0, 0, 1))))
	assert.False(t, state.HasPickedToday("other-game", today))
}

func TestAccuracyRounds(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"no picks", 0, 0, 0},
		{"two thirds rounds up", 2, 3, 67},
		{"one third rounds down", 1, 3, 33},
		{"perfect", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := UserState{CorrectPicks: tt.correct, TotalPicks: tt.total}
			assert.Equal(t, tt.want, state.Accuracy())
		})
	}
}

func TestRecordPickCountsOncePerPick(t *testing.T) {
	now := time.Date(2026, time.June, 12, 10, 0, 0, 0, time.Local)
	state := NewUserState(now)

	state = state.RecordPick(Pick{MatchupID: "sim-chc-vs-stl", SelectedTeam: SideAway, Date: DayString(now)})

	assert.Equal(t, 1, state.TotalPicks)
	assert.Equal(t, 1, state.WeeklyStats.Picks)

	// resolving the pick later must not bump the pick counters again
	state = state.ApplyResult(true)
	assert.Equal(t, 1, state.TotalPicks)
	assert.Equal(t, 1, state.WeeklyStats.Picks)
	assert.Equal(t, 1, state.WeeklyStats.Correct)
}
