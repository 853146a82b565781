package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"streak-pickem-go/models"
)

// FutureBuffer is the minimum lead time a game must have before start to be
// offered as today's matchup; it absorbs feed publishing delays.
const FutureBuffer = 5 * time.Minute

// pastTolerance rejects events whose timestamps are implausibly old
const pastTolerance = time.Hour

// ESPNService handles ESPN API interactions for all supported sports
type ESPNService struct {
	client  *http.Client
	baseURL string
}

// NewESPNService creates a new ESPN service
func NewESPNService() *ESPNService {
	return &ESPNService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://site.api.espn.com/apis/site/v2/sports",
	}
}

// ESPN API response structures
type ESPNResponse struct {
	Events []ESPNEvent `json:"events"`
}

type ESPNEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Name         string            `json:"name"`
	Status       ESPNStatus        `json:"status"`
	Competitions []ESPNCompetition `json:"competitions"`
}

type ESPNStatus struct {
	Type ESPNStatusType `json:"type"`
}

type ESPNStatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
	Detail    string `json:"detail"`
}

type ESPNCompetition struct {
	Competitors []ESPNCompetitor `json:"competitors"`
	Venue       *ESPNVenue       `json:"venue,omitempty"`
	Status      *ESPNStatus      `json:"status,omitempty"`
}

type ESPNVenue struct {
	FullName string `json:"fullName"`
}

type ESPNCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     ESPNTeam `json:"team"`
}

type ESPNTeam struct {
	DisplayName    string `json:"displayName"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	Color          string `json:"color"`
	AlternateColor string `json:"alternateColor"`
}

// ESPNSummaryResponse is the shape of the per-event summary endpoint
type ESPNSummaryResponse struct {
	Header ESPNSummaryHeader `json:"header"`
}

type ESPNSummaryHeader struct {
	Competitions []ESPNCompetition `json:"competitions"`
	LastModified string            `json:"lastModified"`
}

func (e *ESPNService) scoreboardURL(sport models.Sport) string {
	return fmt.Sprintf("%s/%s/scoreboard", e.baseURL, sport.LeaguePath())
}

func (e *ESPNService) summaryURL(sport models.Sport, gameID string) string {
	return fmt.Sprintf("%s/%s/summary?event=%s", e.baseURL, sport.LeaguePath(), gameID)
}

// GetScoreboard fetches the current scoreboard event list for a sport
func (e *ESPNService) GetScoreboard(sport models.Sport) ([]ESPNEvent, error) {
	url := e.scoreboardURL(sport)
	log.Printf("ESPN API: Fetching %s scoreboard from %s", sport, url)

	resp, err := e.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ESPN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN API returned status %d", resp.StatusCode)
	}

	var espnResp ESPNResponse
	if err := json.NewDecoder(resp.Body).Decode(&espnResp); err != nil {
		return nil, fmt.Errorf("failed to decode ESPN response: %w", err)
	}

	log.Printf("ESPN API: Received %d %s events", len(espnResp.Events), sport)
	return espnResp.Events, nil
}

// FetchUpcoming fetches the scoreboard for a sport and selects one game that
// starts at least FutureBuffer in the future, mapped into a Matchup. Returns
// nil with no error when nothing upcoming is available, which callers treat
// as a fallback trigger.
func (e *ESPNService) FetchUpcoming(sport models.Sport, now time.Time) (*models.Matchup, error) {
	events, err := e.GetScoreboard(sport)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		log.Printf("ESPN API: No %s games found", sport)
		return nil, nil
	}

	cutoff := now.Add(FutureBuffer)
	var upcoming []ESPNEvent
	for _, event := range events {
		gameTime, err := parseEventDate(event.Date)
		if err != nil {
			continue
		}
		if gameTime.After(cutoff) {
			upcoming = append(upcoming, event)
		}
	}

	if len(upcoming) == 0 {
		log.Printf("ESPN API: %d %s games available but none upcoming, falling back to simulation", len(events), sport)
		return nil, nil
	}

	selected := upcoming[rand.Intn(len(upcoming))]
	matchup, err := e.convertEvent(selected, sport, now)
	if err != nil {
		return nil, fmt.Errorf("failed to convert event %s: %w", selected.ID, err)
	}

	hoursUntil := matchup.StartTime.Sub(now).Round(time.Hour) / time.Hour
	log.Printf("ESPN API: Selected upcoming game %s (%s @ %s, %dh from now)",
		matchup.ID, matchup.AwayTeam.Abbr, matchup.HomeTeam.Abbr, hoursUntil)
	return matchup, nil
}

// convertEvent maps a single ESPN event into our Matchup model
func (e *ESPNService) convertEvent(event ESPNEvent, sport models.Sport, now time.Time) (*models.Matchup, error) {
	gameTime, err := parseEventDate(event.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid game time %q: %w", event.Date, err)
	}
	if gameTime.Before(now.Add(-pastTolerance)) {
		return nil, fmt.Errorf("game time %s is in the past", gameTime)
	}

	if len(event.Competitions) == 0 {
		return nil, fmt.Errorf("event has no competitions")
	}
	competition := event.Competitions[0]

	home, away, err := splitCompetitors(competition.Competitors)
	if err != nil {
		return nil, err
	}

	venue := fmt.Sprintf("%s Stadium", sport)
	if competition.Venue != nil && competition.Venue.FullName != "" {
		venue = competition.Venue.FullName
	}

	status := "upcoming"
	if event.Status.Type.Detail != "" {
		status = event.Status.Type.Detail
	}

	return &models.Matchup{
		ID:        event.ID,
		HomeTeam:  convertTeam(home, sport, "1D428A", "FFC72C"),
		AwayTeam:  convertTeam(away, sport, "CE1141", "000000"),
		Sport:     sport,
		Venue:     venue,
		StartTime: gameTime,
		Status:    status,
	}, nil
}

// FetchResult resolves a completed game's final outcome, trying the direct
// per-event summary endpoint first and falling back to a scoreboard scan.
// Returns nil with no error when the game cannot be found or is not final.
func (e *ESPNService) FetchResult(gameID string, sport models.Sport) (*models.GameResult, error) {
	result, err := e.fetchResultDirect(gameID, sport)
	if err != nil {
		log.Printf("ESPN API: Direct result lookup for game %s failed: %v", gameID, err)
	}
	if result != nil {
		return result, nil
	}

	log.Printf("ESPN API: Direct endpoint gave no result for game %s, trying scoreboard", gameID)
	result, err = e.fetchResultScoreboard(gameID, sport)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetchResultDirect uses the per-event summary endpoint
func (e *ESPNService) fetchResultDirect(gameID string, sport models.Sport) (*models.GameResult, error) {
	resp, err := e.client.Get(e.summaryURL(sport, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary API returned status %d", resp.StatusCode)
	}

	var summary ESPNSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}

	if len(summary.Header.Competitions) == 0 {
		return nil, fmt.Errorf("no competition data in summary for game %s", gameID)
	}
	competition := summary.Header.Competitions[0]

	if competition.Status == nil || competition.Status.Type.State != "post" {
		log.Printf("ESPN API: Game %s not finished yet", gameID)
		return nil, nil
	}

	completedAt := time.Now()
	if t, err := time.Parse(time.RFC3339, summary.Header.LastModified); err == nil {
		completedAt = t
	}

	return buildResult(gameID, competition.Competitors, completedAt)
}

// fetchResultScoreboard scans the sport scoreboard for the game
func (e *ESPNService) fetchResultScoreboard(gameID string, sport models.Sport) (*models.GameResult, error) {
	events, err := e.GetScoreboard(sport)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if event.ID != gameID {
			continue
		}
		if event.Status.Type.State != "post" {
			log.Printf("ESPN API: Game %s found on scoreboard but not final (state=%s)", gameID, event.Status.Type.State)
			return nil, nil
		}
		if len(event.Competitions) == 0 {
			return nil, fmt.Errorf("completed game %s has no competition data", gameID)
		}
		return buildResult(gameID, event.Competitions[0].Competitors, time.Now())
	}

	log.Printf("ESPN API: Game %s not found in current %s scoreboard", gameID, sport)
	return nil, nil
}

// HealthCheck verifies the ESPN API is accessible for a sport
func (e *ESPNService) HealthCheck(sport models.Sport) bool {
	req, err := http.NewRequest(http.MethodHead, e.scoreboardURL(sport), nil)
	if err != nil {
		return false
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// parseEventDate handles both timestamp formats ESPN emits
func parseEventDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04Z", date)
	if err != nil {
		t, err = time.Parse(time.RFC3339, date)
	}
	return t, err
}

func splitCompetitors(competitors []ESPNCompetitor) (home, away *ESPNCompetitor, err error) {
	for i := range competitors {
		switch competitors[i].HomeAway {
		case "home":
			home = &competitors[i]
		case "away":
			away = &competitors[i]
		}
	}
	if home == nil || away == nil {
		return nil, nil, fmt.Errorf("incomplete home/away team data")
	}
	return home, away, nil
}

func convertTeam(c *ESPNCompetitor, sport models.Sport, defaultColor, defaultAlt string) models.Team {
	name := c.Team.DisplayName
	if name == "" {
		name = c.Team.Name
	}
	color := c.Team.Color
	if color == "" {
		color = defaultColor
	}
	alt := c.Team.AlternateColor
	if alt == "" {
		alt = defaultAlt
	}
	return models.Team{
		Name:   name,
		Abbr:   c.Team.Abbreviation,
		Logo:   sport.Emoji(),
		Colors: [2]string{color, alt},
	}
}

func buildResult(gameID string, competitors []ESPNCompetitor, completedAt time.Time) (*models.GameResult, error) {
	home, away, err := splitCompetitors(competitors)
	if err != nil {
		return nil, err
	}

	homeScore, _ := strconv.Atoi(home.Score)
	awayScore, _ := strconv.Atoi(away.Score)

	winner := models.SideTie
	if homeScore > awayScore {
		winner = models.SideHome
	} else if awayScore > homeScore {
		winner = models.SideAway
	}

	return &models.GameResult{
		GameID:    gameID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Winner:    winner,
		HomeTeam: models.ResultTeam{
			Name:  home.Team.DisplayName,
			Abbr:  home.Team.Abbreviation,
			Score: homeScore,
		},
		AwayTeam: models.ResultTeam{
			Name:  away.Team.DisplayName,
			Abbr:  away.Team.Abbreviation,
			Score: awayScore,
		},
		CompletedAt: completedAt,
	}, nil
}
