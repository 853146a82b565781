package services

import (
	"context"
	"errors"
	"fmt"
	"streak-pickem-go/logging"
	"streak-pickem-go/models"
	"time"
)

var (
	// ErrAlreadyPicked means the user already has a pick for today.
	ErrAlreadyPicked = errors.New("already picked today")
	// ErrGameStarted means the matchup locked when the game began.
	ErrGameStarted = errors.New("game has already started")
	// ErrInvalidSide means the requested side is not pickable.
	ErrInvalidSide = errors.New("invalid side")
)

// PickService owns the daily pick flow: resolving today's matchup for a
// user, accepting at most one pick per day, and handing resolved picks to
// the result checker.
type PickService struct {
	states      StateStore
	matchups    *MatchupService
	checker     *ResultChecker
	notifier    Notifier
	leaderboard LeaderboardSync
	now         func() time.Time
}

// NewPickService creates a pick service.
func NewPickService(states StateStore, matchups *MatchupService, checker *ResultChecker, notifier Notifier, leaderboard LeaderboardSync) *PickService {
	return &PickService{
		states:      states,
		matchups:    matchups,
		checker:     checker,
		notifier:    notifier,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

// TodaysMatchup returns the user's current state and the matchup they can
// pick on today. The state comes back with display name backfilled from
// the session identity on first contact.
func (s *PickService) TodaysMatchup(ctx context.Context, user *models.User) (*models.Matchup, models.UserState, error) {
	userKey := user.StorageKey()

	state, err := s.states.Get(ctx, userKey)
	if err != nil {
		return nil, state, fmt.Errorf("loading state for %s: %w", userKey, err)
	}

	if state.DisplayName == "" {
		state, err = s.states.Update(ctx, userKey, func(st models.UserState) models.UserState {
			if st.DisplayName == "" {
				st.DisplayName = user.DisplayName()
			}
			return st
		})
		if err != nil {
			logging.Warnf("PickService: failed to backfill display name for %s: %v", userKey, err)
		}
	}

	matchup := s.matchups.ResolveTodaysMatchup(s.now(), state.LastPickDate)
	return matchup, state, nil
}

// MakePick records the user's pick for today and schedules its outcome
// check. Rejected when a pick already exists for today or the game has
// started.
func (s *PickService) MakePick(ctx context.Context, user *models.User, side models.Side) (models.UserState, error) {
	logger := logging.WithPrefix("PickService")
	userKey := user.StorageKey()

	if side != models.SideHome && side != models.SideAway {
		return models.UserState{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	state, err := s.states.Get(ctx, userKey)
	if err != nil {
		return state, fmt.Errorf("loading state for %s: %w", userKey, err)
	}

	now := s.now()
	matchup := s.matchups.ResolveTodaysMatchup(now, state.LastPickDate)
	today := models.DayString(now)

	if state.HasPickedToday(matchup.ID, today) {
		return state, ErrAlreadyPicked
	}
	if matchup.HasStarted(now) {
		return state, ErrGameStarted
	}

	pick := models.Pick{
		MatchupID:    matchup.ID,
		SelectedTeam: side,
		Timestamp:    now,
		Date:         today,
	}

	state, err = s.states.Update(ctx, userKey, func(st models.UserState) models.UserState {
		if st.DisplayName == "" {
			st.DisplayName = user.DisplayName()
		}
		return st.RecordPick(pick)
	})
	if err != nil {
		return state, fmt.Errorf("recording pick for %s: %w", userKey, err)
	}

	pickedTeam := matchup.HomeTeam.Name
	if side == models.SideAway {
		pickedTeam = matchup.AwayTeam.Name
	}
	followup := "🎮 Simulated result in 30 seconds."
	if matchup.HasLiveSource() {
		followup = "📡 Real result will be checked after the game!"
	}
	if s.notifier != nil {
		s.notifier.Notify(userKey, models.NewNotification(models.NotifyInfo,
			fmt.Sprintf("You picked: %s. %s", pickedTeam, followup)))
	}

	s.checker.Schedule(ctx, userKey, pick, *matchup)
	if s.leaderboard != nil {
		s.leaderboard.SyncUser(ctx, userKey, state)
	}

	logger.Infof("User %s picked %s for %s", userKey, side, matchup.ID)
	return state, nil
}

// State returns the user's current normalized state.
func (s *PickService) State(ctx context.Context, user *models.User) (models.UserState, error) {
	return s.states.Get(ctx, user.StorageKey())
}

// Results returns the user's rolling result history, most recent last.
func (s *PickService) Results(ctx context.Context, user *models.User) ([]models.ResultRecord, error) {
	state, err := s.states.Get(ctx, user.StorageKey())
	if err != nil {
		return nil, err
	}
	return state.Results, nil
}

// Preferences are the user-adjustable settings carried on their state.
type Preferences struct {
	Theme        *string `json:"theme,omitempty"`
	SoundEnabled *bool   `json:"soundEnabled,omitempty"`
	DisplayName  *string `json:"displayName,omitempty"`
	IsPublic     *bool   `json:"isPublic,omitempty"`
}

// UpdatePreferences applies partial preference changes and pushes the
// refreshed entry to the leaderboard when the name or visibility changed.
func (s *PickService) UpdatePreferences(ctx context.Context, user *models.User, prefs Preferences) (models.UserState, error) {
	userKey := user.StorageKey()

	state, err := s.states.Update(ctx, userKey, func(st models.UserState) models.UserState {
		if prefs.Theme != nil && (*prefs.Theme == "dark" || *prefs.Theme == "light") {
			st.Theme = *prefs.Theme
		}
		if prefs.SoundEnabled != nil {
			st.SoundEnabled = *prefs.SoundEnabled
		}
		if prefs.DisplayName != nil && *prefs.DisplayName != "" {
			st.DisplayName = *prefs.DisplayName
		}
		if prefs.IsPublic != nil {
			st.IsPublic = *prefs.IsPublic
		}
		return st
	})
	if err != nil {
		return state, fmt.Errorf("updating preferences for %s: %w", userKey, err)
	}

	if s.leaderboard != nil && (prefs.DisplayName != nil || prefs.IsPublic != nil) {
		s.leaderboard.SyncUser(ctx, userKey, state)
	}
	return state, nil
}
