package services

import (
	"testing"
	"time"

	"streak-pickem-go/models"

	"github.com/stretchr/testify/assert"
)

const shareURL = "https://streak-pickem.example.com"

func TestGenerateShareTextStreakTiers(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		want   string
	}{
		{"fresh start", 0, "Just started my streak"},
		{"short streak", 3, "3-day streak and counting"},
		{"hot streak", 7, "7-day streak! I'm on fire!"},
		{"huge streak", 14, "INSANE 14-DAY STREAK"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := models.UserState{CurrentStreak: tc.streak}
			text := GenerateShareText(ShareStreak, state, nil, shareURL)
			assert.Contains(t, text, tc.want)
			assert.Contains(t, text, shareURL)
		})
	}
}

func TestGenerateShareTextPick(t *testing.T) {
	matchup := &models.Matchup{
		HomeTeam: models.Team{Name: "Boston Red Sox", Logo: "⚾"},
		AwayTeam: models.Team{Name: "New York Yankees", Logo: "⚾"},
	}
	state := models.UserState{
		CurrentStreak: 2,
		TodaysPick:    &models.Pick{MatchupID: "sim-1", SelectedTeam: models.SideAway, Timestamp: time.Now()},
	}

	text := GenerateShareText(SharePick, state, matchup, shareURL)
	assert.Contains(t, text, "I'm going with New York Yankees!")
	assert.Contains(t, text, "Boston Red Sox vs New York Yankees")
}

func TestGenerateShareTextPickWithoutPickFallsBack(t *testing.T) {
	state := models.UserState{CurrentStreak: 0}
	text := GenerateShareText(SharePick, state, nil, shareURL)
	assert.Contains(t, text, "Just started my streak")
}

func TestGenerateShareTextAchievementMilestones(t *testing.T) {
	state := models.UserState{CurrentStreak: 10}
	text := GenerateShareText(ShareAchievement, state, nil, shareURL)
	assert.Contains(t, text, "DOUBLE DIGITS! 10-DAY STREAK!")

	// off-milestone streaks get the generic banner
	state.CurrentStreak = 12
	text = GenerateShareText(ShareAchievement, state, nil, shareURL)
	assert.Contains(t, text, "12-DAY STREAK!")
}

func TestGenerateShareTextChallenge(t *testing.T) {
	state := models.UserState{CurrentStreak: 8}
	text := GenerateShareText(ShareChallenge, state, nil, shareURL)
	assert.Contains(t, text, "I just hit 8 days")
	assert.Contains(t, text, shareURL)
}

func TestGenerateShareTextUnknownTypeFallsBack(t *testing.T) {
	state := models.UserState{CurrentStreak: 4}
	text := GenerateShareText(ShareType("bogus"), state, nil, shareURL)
	assert.Contains(t, text, "4-day streak and counting")
}
