package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"streak-pickem-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestESPNService(handler http.Handler) (*ESPNService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := &ESPNService{
		client:  server.Client(),
		baseURL: server.URL,
	}
	return svc, server
}

func scoreboardJSON(events ...string) string {
	payload := ""
	for i, e := range events {
		if i > 0 {
			payload += ","
		}
		payload += e
	}
	return fmt.Sprintf(`{"events":[%s]}`, payload)
}

func eventJSON(id string, start time.Time, state string, homeScore, awayScore string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"date": %q,
		"name": "Away at Home",
		"status": {"type": {"name": "STATUS", "state": %q, "completed": %t, "detail": "detail"}},
		"competitions": [{
			"venue": {"fullName": "Test Park"},
			"competitors": [
				{"homeAway": "home", "score": %q, "team": {"displayName": "Home Club", "abbreviation": "HOM", "color": "112233", "alternateColor": "445566"}},
				{"homeAway": "away", "score": %q, "team": {"displayName": "Away Club", "abbreviation": "AWA"}}
			]
		}]
	}`, id, start.UTC().Format("2006-01-02T15:04Z"), state, state == "post", homeScore, awayScore)
}

func TestFetchUpcomingSelectsFutureGame(t *testing.T) {
	now := time.Now()
	future := now.Add(6 * time.Hour)
	past := now.Add(-2 * time.Hour)

	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/baseball/mlb/scoreboard", r.URL.Path)
		fmt.Fprint(w, scoreboardJSON(
			eventJSON("111", past, "in", "3", "2"),
			eventJSON("222", future, "pre", "0", "0"),
		))
	}))
	defer server.Close()

	matchup, err := svc.FetchUpcoming(models.SportMLB, now)

	require.NoError(t, err)
	require.NotNil(t, matchup)
	assert.Equal(t, "222", matchup.ID)
	assert.Equal(t, "Home Club", matchup.HomeTeam.Name)
	assert.Equal(t, "AWA", matchup.AwayTeam.Abbr)
	assert.Equal(t, "Test Park", matchup.Venue)
	assert.Equal(t, [2]string{"112233", "445566"}, matchup.HomeTeam.Colors)
	// away team carried no colors, defaults apply
	assert.Equal(t, [2]string{"CE1141", "000000"}, matchup.AwayTeam.Colors)
	assert.True(t, matchup.HasLiveSource())
}

func TestFetchUpcomingNoUpcomingGames(t *testing.T) {
	now := time.Now()

	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scoreboardJSON(eventJSON("111", now.Add(-3*time.Hour), "post", "5", "4")))
	}))
	defer server.Close()

	matchup, err := svc.FetchUpcoming(models.SportMLB, now)

	require.NoError(t, err)
	assert.Nil(t, matchup)
}

func TestFetchUpcomingIgnoresGamesInsideBuffer(t *testing.T) {
	now := time.Now()
	tooSoon := now.Add(FutureBuffer / 2)

	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scoreboardJSON(eventJSON("111", tooSoon, "pre", "0", "0")))
	}))
	defer server.Close()

	matchup, err := svc.FetchUpcoming(models.SportMLB, now)

	require.NoError(t, err)
	assert.Nil(t, matchup)
}

func TestFetchUpcomingServerError(t *testing.T) {
	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	matchup, err := svc.FetchUpcoming(models.SportMLB, time.Now())

	assert.Error(t, err)
	assert.Nil(t, matchup)
}

func TestFetchResultFromSummary(t *testing.T) {
	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/basketball/nba/summary", r.URL.Path)
		require.Equal(t, "333", r.URL.Query().Get("event"))
		fmt.Fprint(w, `{
			"header": {
				"lastModified": "2026-02-10T05:00:00Z",
				"competitions": [{
					"status": {"type": {"state": "post", "completed": true}},
					"competitors": [
						{"homeAway": "home", "score": "101", "team": {"displayName": "Home Club", "abbreviation": "HOM"}},
						{"homeAway": "away", "score": "99", "team": {"displayName": "Away Club", "abbreviation": "AWA"}}
					]
				}]
			}
		}`)
	}))
	defer server.Close()

	result, err := svc.FetchResult("333", models.SportNBA)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.SideHome, result.Winner)
	assert.Equal(t, 101, result.HomeScore)
	assert.Equal(t, 99, result.AwayScore)
	assert.Equal(t, "101-99", result.ScoreString())
	assert.Equal(t, "Home Club", result.WinningTeam().Name)
}

func TestFetchResultTie(t *testing.T) {
	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"header": {
				"competitions": [{
					"status": {"type": {"state": "post", "completed": true}},
					"competitors": [
						{"homeAway": "home", "score": "2", "team": {"displayName": "Home Club", "abbreviation": "HOM"}},
						{"homeAway": "away", "score": "2", "team": {"displayName": "Away Club", "abbreviation": "AWA"}}
					]
				}]
			}
		}`)
	}))
	defer server.Close()

	result, err := svc.FetchResult("444", models.SportSoccer)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.SideTie, result.Winner)
}

func TestFetchResultFallsBackToScoreboard(t *testing.T) {
	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/football/nfl/summary":
			w.WriteHeader(http.StatusNotFound)
		case "/football/nfl/scoreboard":
			fmt.Fprint(w, scoreboardJSON(eventJSON("555", time.Now().Add(-5*time.Hour), "post", "24", "27")))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	result, err := svc.FetchResult("555", models.SportNFL)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.SideAway, result.Winner)
}

func TestFetchResultNotFinalYet(t *testing.T) {
	svc, server := newTestESPNService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hockey/nhl/summary":
			fmt.Fprint(w, `{"header": {"competitions": [{"status": {"type": {"state": "in"}}, "competitors": []}]}}`)
		case "/hockey/nhl/scoreboard":
			fmt.Fprint(w, scoreboardJSON(eventJSON("666", time.Now(), "in", "1", "1")))
		}
	}))
	defer server.Close()

	result, err := svc.FetchResult("666", models.SportNHL)

	require.NoError(t, err)
	assert.Nil(t, result)
}
