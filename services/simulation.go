package services

import (
	"log"
	"time"

	"streak-pickem-go/models"
)

// poolMatchup is one template in the fixed simulation pool
type poolMatchup struct {
	id    string
	home  models.Team
	away  models.Team
	sport models.Sport
	venue string
}

// matchupPool is the fixed pool the seeded simulation draws from when no
// live data is available.
var matchupPool = []poolMatchup{
	{
		id:    "lal-vs-bos",
		home:  models.Team{Name: "Lakers", Abbr: "LAL", Logo: "🏀", Colors: [2]string{"552583", "FDB927"}},
		away:  models.Team{Name: "Celtics", Abbr: "BOS", Logo: "🏀", Colors: [2]string{"007A33", "BA9653"}},
		sport: models.SportNBA,
		venue: "Crypto.com Arena",
	},
	{
		id:    "gsw-vs-chi",
		home:  models.Team{Name: "Warriors", Abbr: "GSW", Logo: "🏀", Colors: [2]string{"1D428A", "FFC72C"}},
		away:  models.Team{Name: "Bulls", Abbr: "CHI", Logo: "🏀", Colors: [2]string{"CE1141", "000000"}},
		sport: models.SportNBA,
		venue: "Chase Center",
	},
	{
		id:    "kc-vs-buf",
		home:  models.Team{Name: "Chiefs", Abbr: "KC", Logo: "🏈", Colors: [2]string{"E31837", "FFB81C"}},
		away:  models.Team{Name: "Bills", Abbr: "BUF", Logo: "🏈", Colors: [2]string{"00338D", "C60C30"}},
		sport: models.SportNFL,
		venue: "Arrowhead Stadium",
	},
	{
		id:    "dal-vs-gb",
		home:  models.Team{Name: "Cowboys", Abbr: "DAL", Logo: "🏈", Colors: [2]string{"003594", "869397"}},
		away:  models.Team{Name: "Packers", Abbr: "GB", Logo: "🏈", Colors: [2]string{"203731", "FFB612"}},
		sport: models.SportNFL,
		venue: "AT&T Stadium",
	},
	{
		id:    "nyy-vs-bos-mlb",
		home:  models.Team{Name: "Yankees", Abbr: "NYY", Logo: "⚾", Colors: [2]string{"132448", "C4CED4"}},
		away:  models.Team{Name: "Red Sox", Abbr: "BOS", Logo: "⚾", Colors: [2]string{"BD3039", "0C2340"}},
		sport: models.SportMLB,
		venue: "Yankee Stadium",
	},
	{
		id:    "lad-vs-sf",
		home:  models.Team{Name: "Dodgers", Abbr: "LAD", Logo: "⚾", Colors: [2]string{"005A9C", "EF3E42"}},
		away:  models.Team{Name: "Giants", Abbr: "SF", Logo: "⚾", Colors: [2]string{"FD5A1E", "27251F"}},
		sport: models.SportMLB,
		venue: "Dodger Stadium",
	},
	{
		id:    "hou-vs-phi",
		home:  models.Team{Name: "Astros", Abbr: "HOU", Logo: "⚾", Colors: [2]string{"002D62", "EB6E1F"}},
		away:  models.Team{Name: "Phillies", Abbr: "PHI", Logo: "⚾", Colors: [2]string{"E81828", "2D2D2D"}},
		sport: models.SportMLB,
		venue: "Minute Maid Park",
	},
	{
		id:    "tor-vs-mtl",
		home:  models.Team{Name: "Maple Leafs", Abbr: "TOR", Logo: "🏒", Colors: [2]string{"00205B", "A2AAAD"}},
		away:  models.Team{Name: "Canadiens", Abbr: "MTL", Logo: "🏒", Colors: [2]string{"BF2133", "192852"}},
		sport: models.SportNHL,
		venue: "Scotiabank Arena",
	},
	{
		id:    "bos-vs-chi-nhl",
		home:  models.Team{Name: "Bruins", Abbr: "BOS", Logo: "🏒", Colors: [2]string{"FFB81C", "000000"}},
		away:  models.Team{Name: "Blackhawks", Abbr: "CHI", Logo: "🏒", Colors: [2]string{"E32637", "000000"}},
		sport: models.SportNHL,
		venue: "TD Garden",
	},
	{
		id:    "rm-vs-fcb",
		home:  models.Team{Name: "Real Madrid", Abbr: "RMA", Logo: "⚽", Colors: [2]string{"FFFFFF", "0056B9"}},
		away:  models.Team{Name: "FC Barcelona", Abbr: "FCB", Logo: "⚽", Colors: [2]string{"A50044", "004D98"}},
		sport: models.SportSoccer,
		venue: "Santiago Bernabéu",
	},
	{
		id:    "man-utd-vs-liv",
		home:  models.Team{Name: "Man Utd", Abbr: "MUN", Logo: "⚽", Colors: [2]string{"DA291C", "000000"}},
		away:  models.Team{Name: "Liverpool", Abbr: "LIV", Logo: "⚽", Colors: [2]string{"C8102E", "F6EB1C"}},
		sport: models.SportSoccer,
		venue: "Old Trafford",
	},
	{
		id:    "duke-vs-unc",
		home:  models.Team{Name: "Duke", Abbr: "DUKE", Logo: "🏀", Colors: [2]string{"001A57", "C8C8C8"}},
		away:  models.Team{Name: "UNC", Abbr: "UNC", Logo: "🏀", Colors: [2]string{"4B9CD3", "FFFFFF"}},
		sport: models.SportNCAAB,
		venue: "Cameron Indoor Stadium",
	},
	{
		id:    "vill-vs-gtown",
		home:  models.Team{Name: "Villanova", Abbr: "VILL", Logo: "🏀", Colors: [2]string{"00205B", "FFFFFF"}},
		away:  models.Team{Name: "Georgetown", Abbr: "GTOWN", Logo: "🏀", Colors: [2]string{"00205B", "63666A"}},
		sport: models.SportNCAAB,
		venue: "Finneran Pavilion",
	},
	{
		id:    "golden-state-vs-lakers",
		home:  models.Team{Name: "Golden State", Abbr: "GSW", Logo: "🏀", Colors: [2]string{"1D428A", "FFC72C"}},
		away:  models.Team{Name: "Lakers", Abbr: "LAL", Logo: "🏀", Colors: [2]string{"552583", "FDB927"}},
		sport: models.SportNBA,
		venue: "Chase Center",
	},
	{
		id:    "dallas-vs-miami",
		home:  models.Team{Name: "Dallas", Abbr: "DAL", Logo: "🏀", Colors: [2]string{"0078AE", "00285E"}},
		away:  models.Team{Name: "Miami", Abbr: "MIA", Logo: "🏀", Colors: [2]string{"98002E", "F9A01B"}},
		sport: models.SportNBA,
		venue: "American Airlines Center",
	},
	{
		id:    "seattle-vs-la-rams",
		home:  models.Team{Name: "Seahawks", Abbr: "SEA", Logo: "🏈", Colors: [2]string{"002244", "69BE28"}},
		away:  models.Team{Name: "Rams", Abbr: "LAR", Logo: "🏈", Colors: [2]string{"002244", "85714D"}},
		sport: models.SportNFL,
		venue: "Lumen Field",
	},
	{
		id:    "green-bay-vs-minnesota",
		home:  models.Team{Name: "Packers", Abbr: "GB", Logo: "🏈", Colors: [2]string{"203731", "FFB612"}},
		away:  models.Team{Name: "Vikings", Abbr: "MIN", Logo: "🏈", Colors: [2]string{"4F2683", "FFC62F"}},
		sport: models.SportNFL,
		venue: "Lambeau Field",
	},
	{
		id:    "boston-vs-la-angels",
		home:  models.Team{Name: "Red Sox", Abbr: "BOS", Logo: "⚾", Colors: [2]string{"BD3039", "0C2340"}},
		away:  models.Team{Name: "Angels", Abbr: "LAA", Logo: "⚾", Colors: [2]string{"BA0021", "862633"}},
		sport: models.SportMLB,
		venue: "Fenway Park",
	},
	{
		id:    "chicago-cubs-vs-st-louis",
		home:  models.Team{Name: "Cubs", Abbr: "CHC", Logo: "⚾", Colors: [2]string{"0E3386", "CC3333"}},
		away:  models.Team{Name: "Cardinals", Abbr: "STL", Logo: "⚾", Colors: [2]string{"C41E3A", "0C2340"}},
		sport: models.SportMLB,
		venue: "Wrigley Field",
	},
	{
		id:    "pittsburgh-vs-philadelphia-nhl",
		home:  models.Team{Name: "Penguins", Abbr: "PIT", Logo: "🏒", Colors: [2]string{"000000", "FCB514"}},
		away:  models.Team{Name: "Flyers", Abbr: "PHI", Logo: "🏒", Colors: [2]string{"F74902", "000000"}},
		sport: models.SportNHL,
		venue: "PPG Paints Arena",
	},
	{
		id:    "colorado-vs-vegas",
		home:  models.Team{Name: "Avalanche", Abbr: "COL", Logo: "🏒", Colors: [2]string{"6F263D", "236192"}},
		away:  models.Team{Name: "Golden Knights", Abbr: "VGK", Logo: "🏒", Colors: [2]string{"B4975A", "333333"}},
		sport: models.SportNHL,
		venue: "Ball Arena",
	},
	{
		id:    "paris-sg-vs-bayern",
		home:  models.Team{Name: "Paris SG", Abbr: "PSG", Logo: "⚽", Colors: [2]string{"004170", "DA291C"}},
		away:  models.Team{Name: "Bayern Munich", Abbr: "BAY", Logo: "⚽", Colors: [2]string{"DC052D", "0066B2"}},
		sport: models.SportSoccer,
		venue: "Parc des Princes",
	},
}

// dateSeed derives the daily simulation seed from the calendar date
func dateSeed(date time.Time) int64 {
	return int64(date.Year())*10000 + int64(date.Month())*100 + int64(date.Day())
}

// GenerateSeasonal produces the deterministic simulated matchup of the day.
// The date fixes both the pool index and the synthesized start time, so the
// same calendar day always yields the same matchup regardless of when during
// the day it is generated. The pool is filtered to the sport currently in
// season; when the filter leaves nothing the full pool is used.
func GenerateSeasonal(date time.Time) *models.Matchup {
	return GenerateForSport(models.CurrentSport(date), date)
}

// GenerateForSport is GenerateSeasonal pinned to a specific sport.
func GenerateForSport(sport models.Sport, date time.Time) *models.Matchup {
	var available []poolMatchup
	for _, m := range matchupPool {
		if m.sport == sport {
			available = append(available, m)
		}
	}
	if len(available) == 0 {
		available = matchupPool
	}

	seed := dateSeed(date)
	selected := available[seed%int64(len(available))]

	// Afternoon start derived from the seed: same day, same time. Base is
	// noon of the calendar day plus a 2-5 hour offset.
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	startTime := dayStart.Add(time.Duration(2+seed%4) * time.Hour)

	emoji := sport.Emoji()
	home := selected.home
	home.Logo = emoji
	away := selected.away
	away.Logo = emoji

	log.Printf("Simulation: Generated %s matchup %s for %s", sport, selected.id, models.DayString(date))

	return &models.Matchup{
		ID:        models.SimulatedIDPrefix + selected.id,
		HomeTeam:  home,
		AwayTeam:  away,
		Sport:     sport,
		Venue:     selected.venue,
		StartTime: startTime,
		Status:    "upcoming",
	}
}
