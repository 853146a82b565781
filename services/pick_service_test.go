package services

import (
	"context"
	"testing"
	"time"

	"streak-pickem-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPickService(states StateStore, notifier Notifier, lb LeaderboardSync) (*PickService, *ResultChecker) {
	checker := newTestChecker(&stubResultFetcher{}, states, newMemCheckStore(), notifier, lb)
	svc := NewPickService(states, NewMatchupService(nil), checker, notifier, lb)
	return svc, checker
}

func anonymousUser() *models.User {
	return nil
}

func TestMakePickRecordsStateAndSchedulesCheck(t *testing.T) {
	states := newMemStateStore()
	notifier := &captureNotifier{}
	lb := &countingLeaderboard{}
	svc, checker := newTestPickService(states, notifier, lb)
	defer checker.Stop()

	// morning, before the simulated afternoon start
	svc.now = func() time.Time { return time.Date(2026, time.July, 10, 9, 0, 0, 0, time.Local) }

	state, err := svc.MakePick(context.Background(), anonymousUser(), models.SideHome)
	require.NoError(t, err)

	assert.Equal(t, 1, state.TotalPicks)
	require.NotNil(t, state.TodaysPick)
	assert.Equal(t, models.SideHome, state.TodaysPick.SelectedTeam)
	assert.Equal(t, "Fri Jul 10 2026", state.LastPickDate)

	notes := notifier.all()
	require.NotEmpty(t, notes)
	assert.Equal(t, models.NotifyInfo, notes[0].Type)
	assert.Contains(t, notes[0].Message, "You picked:")
	assert.Contains(t, notes[0].Message, "Simulated result")
}

func TestMakePickRejectsSecondPickSameDay(t *testing.T) {
	states := newMemStateStore()
	svc, checker := newTestPickService(states, &captureNotifier{}, &countingLeaderboard{})
	defer checker.Stop()
	svc.now = func() time.Time { return time.Date(2026, time.July, 10, 9, 0, 0, 0, time.Local) }

	_, err := svc.MakePick(context.Background(), anonymousUser(), models.SideHome)
	require.NoError(t, err)

	state, err := svc.MakePick(context.Background(), anonymousUser(), models.SideAway)
	assert.ErrorIs(t, err, ErrAlreadyPicked)
	assert.Equal(t, 1, state.TotalPicks)
	assert.Equal(t, models.SideHome, state.TodaysPick.SelectedTeam)
}

func TestMakePickRejectsStartedGame(t *testing.T) {
	states := newMemStateStore()
	svc, checker := newTestPickService(states, &captureNotifier{}, &countingLeaderboard{})
	defer checker.Stop()

	// simulated games start between 14:00 and 17:00; 23:00 is past all of them
	svc.now = func() time.Time { return time.Date(2026, time.July, 10, 23, 0, 0, 0, time.Local) }

	state, err := svc.MakePick(context.Background(), anonymousUser(), models.SideHome)
	assert.ErrorIs(t, err, ErrGameStarted)
	assert.Equal(t, 0, state.TotalPicks)
}

func TestMakePickRejectsInvalidSide(t *testing.T) {
	svc, checker := newTestPickService(newMemStateStore(), &captureNotifier{}, &countingLeaderboard{})
	defer checker.Stop()

	_, err := svc.MakePick(context.Background(), anonymousUser(), models.Side("middle"))
	assert.ErrorIs(t, err, ErrInvalidSide)

	_, err = svc.MakePick(context.Background(), anonymousUser(), models.SideTie)
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestMakePickAllowsNewDay(t *testing.T) {
	states := newMemStateStore()
	svc, checker := newTestPickService(states, &captureNotifier{}, &countingLeaderboard{})
	defer checker.Stop()

	svc.now = func() time.Time { return time.Date(2026, time.July, 10, 9, 0, 0, 0, time.Local) }
	_, err := svc.MakePick(context.Background(), anonymousUser(), models.SideHome)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, time.July, 11, 9, 0, 0, 0, time.Local) }
	state, err := svc.MakePick(context.Background(), anonymousUser(), models.SideAway)
	require.NoError(t, err)
	assert.Equal(t, 2, state.TotalPicks)
	assert.Equal(t, "Sat Jul 11 2026", state.LastPickDate)
}

func TestTodaysMatchupBackfillsDisplayName(t *testing.T) {
	states := newMemStateStore()
	svc, checker := newTestPickService(states, &captureNotifier{}, &countingLeaderboard{})
	defer checker.Stop()
	svc.now = func() time.Time { return time.Date(2026, time.July, 10, 9, 0, 0, 0, time.Local) }

	user := &models.User{ID: "user-42", Email: "casey@example.com", Username: "casey"}
	matchup, state, err := svc.TodaysMatchup(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, matchup)
	assert.Equal(t, "casey", state.DisplayName)

	stored, _ := states.Get(context.Background(), user.StorageKey())
	assert.Equal(t, "casey", stored.DisplayName)
}

func TestUpdatePreferences(t *testing.T) {
	states := newMemStateStore()
	states.states[models.AnonymousUserKey] = models.NewUserState(time.Now())
	lb := &countingLeaderboard{}
	svc, checker := newTestPickService(states, &captureNotifier{}, lb)
	defer checker.Stop()

	theme := "light"
	name := "StreakLord"
	public := false
	state, err := svc.UpdatePreferences(context.Background(), anonymousUser(), Preferences{
		Theme:       &theme,
		DisplayName: &name,
		IsPublic:    &public,
	})
	require.NoError(t, err)
	assert.Equal(t, "light", state.Theme)
	assert.Equal(t, "StreakLord", state.DisplayName)
	assert.False(t, state.IsPublic)
	assert.Equal(t, int32(1), lb.syncs)

	// invalid theme and empty name are ignored
	bad := "neon"
	empty := ""
	state, err = svc.UpdatePreferences(context.Background(), anonymousUser(), Preferences{
		Theme:       &bad,
		DisplayName: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "light", state.Theme)
	assert.Equal(t, "StreakLord", state.DisplayName)
}
