package services

import (
	"errors"
	"testing"
	"time"

	"streak-pickem-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	matchup *models.Matchup
	err     error
	panics  bool
	calls   int
}

func (s *stubFetcher) FetchUpcoming(sport models.Sport, now time.Time) (*models.Matchup, error) {
	s.calls++
	if s.panics {
		panic("feed blew up")
	}
	return s.matchup, s.err
}

func TestResolveTodaysMatchupPrefersLive(t *testing.T) {
	live := &models.Matchup{
		ID:        "401629465",
		HomeTeam:  models.Team{Name: "New York Yankees", Abbr: "NYY"},
		AwayTeam:  models.Team{Name: "Boston Red Sox", Abbr: "BOS"},
		Sport:     models.SportMLB,
		StartTime: time.Now().Add(3 * time.Hour),
	}
	svc := NewMatchupService(&stubFetcher{matchup: live})

	got := svc.ResolveTodaysMatchup(time.Now(), "")

	require.NotNil(t, got)
	assert.Equal(t, "401629465", got.ID)
	assert.True(t, got.HasLiveSource())
}

func TestResolveTodaysMatchupFallsBackOnError(t *testing.T) {
	svc := NewMatchupService(&stubFetcher{err: errors.New("espn unreachable")})

	got := svc.ResolveTodaysMatchup(time.Now(), "")

	require.NotNil(t, got)
	assert.True(t, got.IsSimulated())
}

func TestResolveTodaysMatchupFallsBackWhenNothingUpcoming(t *testing.T) {
	svc := NewMatchupService(&stubFetcher{}) // nil matchup, nil error

	got := svc.ResolveTodaysMatchup(time.Now(), "")

	require.NotNil(t, got)
	assert.True(t, got.IsSimulated())
}

func TestResolveTodaysMatchupSimulationOnlyMode(t *testing.T) {
	svc := NewMatchupService(nil)

	got := svc.ResolveTodaysMatchup(time.Now(), "")

	require.NotNil(t, got)
	assert.True(t, got.IsSimulated())
}

func TestResolveTodaysMatchupSameDayReloadIsStable(t *testing.T) {
	svc := NewMatchupService(nil)

	morning := time.Date(2026, time.July, 4, 9, 0, 0, 0, time.Local)
	evening := time.Date(2026, time.July, 4, 21, 0, 0, 0, time.Local)
	day := models.DayString(morning)

	first := svc.ResolveTodaysMatchup(morning, day)
	second := svc.ResolveTodaysMatchup(evening, day)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.StartTime, second.StartTime)
}

func TestResolveTodaysMatchupSportOverride(t *testing.T) {
	svc := NewMatchupService(nil)
	svc.SetSportOverride(models.SportNHL)

	// July would normally be MLB season
	got := svc.ResolveTodaysMatchup(time.Date(2026, time.July, 4, 9, 0, 0, 0, time.Local), "")

	require.NotNil(t, got)
	assert.Equal(t, models.SportNHL, got.Sport)
	assert.Equal(t, "🏒", got.HomeTeam.Logo)
}

func TestResolveTodaysMatchupRecoversFromPanic(t *testing.T) {
	svc := NewMatchupService(&stubFetcher{panics: true})

	got := svc.ResolveTodaysMatchup(time.Now(), "")

	require.NotNil(t, got)
	assert.True(t, got.IsFallback())
	assert.Equal(t, "❓", got.HomeTeam.Logo)
	assert.Equal(t, "Generic Arena", got.Venue)
}

func TestFallbackMatchupShape(t *testing.T) {
	now := time.Now()
	m := fallbackMatchup(now)

	assert.Equal(t, "fallback-game", m.ID)
	assert.Equal(t, "HME", m.HomeTeam.Abbr)
	assert.Equal(t, "AWY", m.AwayTeam.Abbr)
	assert.False(t, m.HasLiveSource())
	assert.True(t, m.StartTime.After(now))
}
