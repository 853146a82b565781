package services

import (
	"context"
	"fmt"
	"math/rand"
	"streak-pickem-go/logging"
	"streak-pickem-go/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateStore persists per-user streak state. Get always returns a usable
// state: missing documents come back as a fresh default and the day/week
// rollovers are already applied.
type StateStore interface {
	Get(ctx context.Context, userKey string) (models.UserState, error)
	Update(ctx context.Context, userKey string, fn func(models.UserState) models.UserState) (models.UserState, error)
}

// ResultFetcher retrieves the final result of a game. A nil result with a
// nil error means the game is not final yet.
type ResultFetcher interface {
	FetchResult(gameID string, sport models.Sport) (*models.GameResult, error)
}

// CheckStore persists pending outcome checks across restarts.
type CheckStore interface {
	Save(ctx context.Context, check *models.PendingCheck) error
	ListPending(ctx context.Context) ([]*models.PendingCheck, error)
}

// Notifier delivers user-facing notifications. Delivery is best effort.
type Notifier interface {
	Notify(userKey string, notification models.Notification)
}

// LeaderboardSync pushes a user's latest state to the shared leaderboard.
type LeaderboardSync interface {
	SyncUser(ctx context.Context, userKey string, state models.UserState)
}

// ResultChecker resolves pick outcomes after games end. Each pick gets a
// persisted check that waits until the estimated end of the game, fetches
// the final score, and updates the user's streak. Unavailable results are
// retried a few times before the check gives up with the streak unchanged.
type ResultChecker struct {
	fetcher     ResultFetcher
	states      StateStore
	checks      CheckStore
	notifier    Notifier
	leaderboard LeaderboardSync

	postGameDelay time.Duration
	retryInterval time.Duration
	minDelay      time.Duration
	simDelay      time.Duration

	now     func() time.Time
	simCoin func() bool

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewResultChecker creates a result checker with production timings.
func NewResultChecker(fetcher ResultFetcher, states StateStore, checks CheckStore, notifier Notifier, leaderboard LeaderboardSync) *ResultChecker {
	return &ResultChecker{
		fetcher:       fetcher,
		states:        states,
		checks:        checks,
		notifier:      notifier,
		leaderboard:   leaderboard,
		postGameDelay: 30 * time.Minute,
		retryInterval: time.Hour,
		minDelay:      5 * time.Second,
		simDelay:      30 * time.Second,
		now:           time.Now,
		simCoin:       func() bool { return rand.Float64() > 0.5 },
		stopChan:      make(chan struct{}),
	}
}

// Schedule registers an outcome check for a fresh pick and starts its
// background worker. The check is persisted first so it survives restarts.
func (rc *ResultChecker) Schedule(ctx context.Context, userKey string, pick models.Pick, matchup models.Matchup) {
	logger := logging.WithPrefix("ResultChecker")

	check := &models.PendingCheck{
		ID:        uuid.NewString(),
		UserKey:   userKey,
		Pick:      pick,
		Matchup:   matchup,
		Attempt:   1,
		State:     models.CheckScheduled,
		CreatedAt: rc.now(),
		UpdatedAt: rc.now(),
	}

	if matchup.HasLiveSource() {
		check.NotBefore = rc.firstCheckTime(matchup)
		logger.Infof("Scheduled result check for %s vs %s at %s",
			matchup.HomeTeam.Abbr, matchup.AwayTeam.Abbr, check.NotBefore.Format(time.RFC3339))
	} else {
		check.NotBefore = rc.now().Add(rc.simDelay)
		logger.Debugf("Scheduled simulated result for %s in %s", matchup.ID, rc.simDelay)
	}

	if err := rc.checks.Save(ctx, check); err != nil {
		logger.Warnf("Failed to persist check for %s, continuing in memory: %v", matchup.ID, err)
	}

	rc.spawn(check)
}

// ResumePending restarts workers for checks persisted before a restart.
func (rc *ResultChecker) ResumePending(ctx context.Context) {
	logger := logging.WithPrefix("ResultChecker")

	pending, err := rc.checks.ListPending(ctx)
	if err != nil {
		logger.Errorf("Failed to load pending checks: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	logger.Infof("Resuming %d pending result checks", len(pending))
	for _, check := range pending {
		rc.spawn(check)
	}
}

// Stop shuts down all in-flight workers. Persisted checks resume on the
// next start.
func (rc *ResultChecker) Stop() {
	rc.stopOnce.Do(func() { close(rc.stopChan) })
	rc.wg.Wait()
}

func (rc *ResultChecker) spawn(check *models.PendingCheck) {
	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		rc.run(check)
	}()
}

// firstCheckTime is the estimated end of the game plus a settling period,
// floored so that games already over still wait a moment before fetching.
func (rc *ResultChecker) firstCheckTime(matchup models.Matchup) time.Time {
	target := matchup.EstimatedEnd().Add(rc.postGameDelay)
	floor := rc.now().Add(rc.minDelay)
	if target.Before(floor) {
		return floor
	}
	return target
}

func (rc *ResultChecker) run(check *models.PendingCheck) {
	logger := logging.WithPrefix("ResultChecker")
	ctx := context.Background()

	for {
		if !rc.sleepUntil(check.NotBefore) {
			return
		}

		if !check.Matchup.HasLiveSource() {
			rc.resolveSimulated(ctx, check)
			return
		}

		check.State = models.CheckChecking
		check.UpdatedAt = rc.now()
		rc.saveQuietly(ctx, check)

		logger.Infof("Checking result for game %s (attempt %d)", check.Pick.MatchupID, check.Attempt)

		result, err := rc.fetcher.FetchResult(check.Pick.MatchupID, check.Matchup.Sport)
		if err != nil {
			logger.Warnf("Result fetch failed for %s: %v", check.Pick.MatchupID, err)
		}
		if result != nil {
			rc.resolve(ctx, check, result)
			return
		}

		if check.Attempt >= models.MaxCheckAttempts {
			rc.exhaust(ctx, check)
			return
		}

		check.Attempt++
		check.State = models.CheckScheduled
		check.NotBefore = rc.now().Add(rc.retryInterval)
		check.UpdatedAt = rc.now()
		rc.saveQuietly(ctx, check)
		logger.Infof("Result unavailable for %s, retrying at %s (attempt %d)",
			check.Pick.MatchupID, check.NotBefore.Format(time.RFC3339), check.Attempt)
	}
}

// sleepUntil blocks until the deadline or shutdown. Returns false when
// the checker is stopping.
func (rc *ResultChecker) sleepUntil(deadline time.Time) bool {
	delay := deadline.Sub(rc.now())
	if delay <= 0 {
		return true
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-rc.stopChan:
		return false
	}
}

func (rc *ResultChecker) resolve(ctx context.Context, check *models.PendingCheck, result *models.GameResult) {
	logger := logging.WithPrefix("ResultChecker")

	correct := result.Winner == models.SideTie || check.Pick.SelectedTeam == result.Winner

	state, err := rc.states.Update(ctx, check.UserKey, func(s models.UserState) models.UserState {
		s = s.ApplyResult(correct)
		s.Results = models.AppendResult(s.Results, models.ResultRecord{
			GameID:       check.Pick.MatchupID,
			UserPick:     check.Pick.SelectedTeam,
			ActualWinner: result.Winner,
			IsCorrect:    correct,
			FinalScore:   result.ScoreString(),
			CheckedAt:    rc.now(),
			GameDate:     check.Matchup.StartTime,
		})
		return s
	})
	if err != nil {
		logger.Errorf("Failed to apply result for user %s: %v", check.UserKey, err)
	}

	rc.notify(check.UserKey, resultNotification(check, result, correct, state.CurrentStreak))
	rc.leaderboard.SyncUser(ctx, check.UserKey, state)

	check.State = models.CheckResolved
	check.UpdatedAt = rc.now()
	rc.saveQuietly(ctx, check)

	logger.Infof("Result processed for %s: correct=%t score=%s", check.Pick.MatchupID, correct, result.ScoreString())
}

func (rc *ResultChecker) resolveSimulated(ctx context.Context, check *models.PendingCheck) {
	logger := logging.WithPrefix("ResultChecker")

	correct := rc.simCoin()
	winner := check.Pick.SelectedTeam
	if !correct {
		winner = winner.Opponent()
	}

	state, err := rc.states.Update(ctx, check.UserKey, func(s models.UserState) models.UserState {
		s = s.ApplyResult(correct)
		s.Results = models.AppendResult(s.Results, models.ResultRecord{
			GameID:       check.Pick.MatchupID,
			UserPick:     check.Pick.SelectedTeam,
			ActualWinner: winner,
			IsCorrect:    correct,
			CheckedAt:    rc.now(),
			GameDate:     check.Matchup.StartTime,
		})
		return s
	})
	if err != nil {
		logger.Errorf("Failed to apply simulated result for user %s: %v", check.UserKey, err)
	}

	message := fmt.Sprintf("🎉 Correct! Streak: %d", state.CurrentStreak)
	kind := models.NotifySuccess
	if !correct {
		message = "😞 Wrong! Streak reset."
		kind = models.NotifyError
	}
	rc.notify(check.UserKey, models.NewNotification(kind, message))
	rc.leaderboard.SyncUser(ctx, check.UserKey, state)

	check.State = models.CheckResolved
	check.UpdatedAt = rc.now()
	rc.saveQuietly(ctx, check)

	logger.Debugf("Simulated result for %s: correct=%t", check.Pick.MatchupID, correct)
}

func (rc *ResultChecker) exhaust(ctx context.Context, check *models.PendingCheck) {
	logger := logging.WithPrefix("ResultChecker")
	logger.Warnf("Max attempts (%d) reached for game %s, result unavailable", models.MaxCheckAttempts, check.Pick.MatchupID)

	rc.notify(check.UserKey, models.NewNotification(models.NotifyWarning,
		fmt.Sprintf("Could not get result for %s vs %s. Your streak is unchanged.",
			check.Matchup.HomeTeam.Abbr, check.Matchup.AwayTeam.Abbr)))

	check.State = models.CheckExhausted
	check.UpdatedAt = rc.now()
	rc.saveQuietly(ctx, check)
}

func (rc *ResultChecker) notify(userKey string, n models.Notification) {
	if rc.notifier != nil {
		rc.notifier.Notify(userKey, n)
	}
}

func (rc *ResultChecker) saveQuietly(ctx context.Context, check *models.PendingCheck) {
	if err := rc.checks.Save(ctx, check); err != nil {
		logging.WithPrefix("ResultChecker").Warnf("Failed to persist check %s: %v", check.ID, err)
	}
}

func resultNotification(check *models.PendingCheck, result *models.GameResult, correct bool, streak int) models.Notification {
	if result.Winner == models.SideTie {
		return models.NewNotification(models.NotifySuccess,
			fmt.Sprintf("🤝 Tie Game! %s %d - %s %d. Streak continues!",
				result.HomeTeam.Abbr, result.HomeScore, result.AwayTeam.Abbr, result.AwayScore))
	}

	winning := result.WinningTeam()
	if correct {
		return models.NewNotification(models.NotifySuccess,
			fmt.Sprintf("🎉 Correct! %s won %s. Streak: %d!", winning.Name, result.ScoreString(), streak))
	}

	pickedAbbr := check.Matchup.HomeTeam.Abbr
	if check.Pick.SelectedTeam == models.SideAway {
		pickedAbbr = check.Matchup.AwayTeam.Abbr
	}
	return models.NewNotification(models.NotifyError,
		fmt.Sprintf("😞 Wrong! You picked %s, but %s won %s. Streak reset.", pickedAbbr, winning.Name, result.ScoreString()))
}
