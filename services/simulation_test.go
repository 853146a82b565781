package services

import (
	"strings"
	"testing"
	"time"

	"streak-pickem-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeasonalDeterministic(t *testing.T) {
	date := time.Date(2026, time.July, 4, 9, 30, 0, 0, time.Local)

	first := GenerateSeasonal(date)
	second := GenerateSeasonal(date)

	assert.Equal(t, first, second)

	// generating later the same day still yields the identical matchup
	evening := time.Date(2026, time.July, 4, 22, 0, 0, 0, time.Local)
	third := GenerateSeasonal(evening)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, first.StartTime, third.StartTime)
}

func TestGenerateSeasonalMarksMatchupSimulated(t *testing.T) {
	m := GenerateSeasonal(time.Date(2026, time.July, 4, 9, 0, 0, 0, time.Local))

	assert.True(t, strings.HasPrefix(m.ID, models.SimulatedIDPrefix))
	assert.True(t, m.IsSimulated())
	assert.False(t, m.HasLiveSource())
}

func TestGenerateSeasonalRespectsSeason(t *testing.T) {
	summer := GenerateSeasonal(time.Date(2026, time.July, 10, 12, 0, 0, 0, time.Local))
	winter := GenerateSeasonal(time.Date(2026, time.December, 10, 12, 0, 0, 0, time.Local))

	assert.Equal(t, models.SportMLB, summer.Sport)
	assert.Equal(t, models.SportNBA, winter.Sport)
	assert.Equal(t, "⚾", summer.HomeTeam.Logo)
	assert.Equal(t, "🏀", winter.HomeTeam.Logo)
}

func TestGenerateSeasonalStartTimeIsAfternoon(t *testing.T) {
	// the synthesized start sits in the 14:00-17:00 window of the same day
	for day := 1; day <= 28; day++ {
		date := time.Date(2026, time.May, day, 8, 0, 0, 0, time.Local)
		m := GenerateSeasonal(date)

		require.Equal(t, day, m.StartTime.Day())
		assert.GreaterOrEqual(t, m.StartTime.Hour(), 14)
		assert.LessOrEqual(t, m.StartTime.Hour(), 17)
	}
}

func TestGenerateSeasonalVariesAcrossDays(t *testing.T) {
	seen := make(map[string]bool)
	for day := 1; day <= 14; day++ {
		m := GenerateSeasonal(time.Date(2026, time.May, day, 12, 0, 0, 0, time.Local))
		seen[m.ID] = true
	}
	assert.Greater(t, len(seen), 1, "two weeks of matchups should not all be identical")
}
