package services

import (
	"time"

	"streak-pickem-go/logging"
	"streak-pickem-go/models"
)

// UpcomingFetcher is the live-data dependency of the resolution engine
type UpcomingFetcher interface {
	FetchUpcoming(sport models.Sport, now time.Time) (*models.Matchup, error)
}

// MatchupService decides what matchup a user sees today, falling through
// live data, seeded simulation, and a hardcoded placeholder. It never
// returns an error: every failure only drops to the next tier.
type MatchupService struct {
	live          UpcomingFetcher
	sportOverride models.Sport
}

// NewMatchupService creates a new matchup resolution service. A nil live
// fetcher runs the engine in simulation-only mode.
func NewMatchupService(live UpcomingFetcher) *MatchupService {
	return &MatchupService{live: live}
}

// SetSportOverride pins matchup resolution to one sport regardless of the
// season calendar. An empty value restores seasonal selection.
func (s *MatchupService) SetSportOverride(sport models.Sport) {
	s.sportOverride = sport
}

// ResolveTodaysMatchup returns the matchup for the session's current day.
// When lastPickDate matches the reference day the matchup is regenerated for
// that stored day, so a mid-day reload shows the same game. A different (or
// empty) lastPickDate means a new day and a fresh matchup.
func (s *MatchupService) ResolveTodaysMatchup(ref time.Time, lastPickDate string) (matchup *models.Matchup) {
	logger := logging.WithPrefix("MatchupService")
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Matchup generation panicked (%v), using fallback", r)
			matchup = fallbackMatchup(ref)
		}
	}()

	target := ref
	if lastPickDate != "" && lastPickDate == models.DayString(ref) {
		if day, err := models.ParseDay(lastPickDate); err == nil {
			target = day
		}
	} else {
		logger.Infof("New day (%s), loading fresh matchup", models.DayString(ref))
	}

	sport := models.CurrentSport(target)
	if s.sportOverride != "" {
		sport = s.sportOverride
	}

	if s.live != nil {
		live, err := s.live.FetchUpcoming(sport, ref)
		if err != nil {
			logger.Warnf("Live %s data failed, using simulation: %v", sport, err)
		} else if live != nil {
			logger.Infof("Using live %s matchup %s", sport, live.ID)
			return live
		}
	}

	return GenerateForSport(sport, target)
}

// fallbackMatchup is the last-resort placeholder shown when even simulated
// generation fails. Its id prefix keeps result checking away from the network.
func fallbackMatchup(now time.Time) *models.Matchup {
	return &models.Matchup{
		ID:        models.FallbackIDPrefix + "game",
		HomeTeam:  models.Team{Name: "Home Team", Abbr: "HME", Logo: "❓", Colors: [2]string{"505050", "808080"}},
		AwayTeam:  models.Team{Name: "Away Team", Abbr: "AWY", Logo: "❓", Colors: [2]string{"505050", "808080"}},
		Sport:     models.Sport("Unknown"),
		Venue:     "Generic Arena",
		StartTime: now.Add(2 * time.Hour),
		Status:    "upcoming",
	}
}
