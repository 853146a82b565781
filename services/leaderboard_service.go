package services

import (
	"context"
	"fmt"
	"streak-pickem-go/logging"
	"streak-pickem-go/models"
	"strconv"
	"time"
)

// LeaderboardStore persists the shared leaderboard collection.
type LeaderboardStore interface {
	LoadAll(ctx context.Context) ([]models.LeaderboardEntry, error)
	Upsert(ctx context.Context, entry models.LeaderboardEntry) error
	DeleteIDs(ctx context.Context, ids []string) error
}

// EventPublisher announces leaderboard changes to connected sessions.
type EventPublisher interface {
	Publish(eventType, userID string) error
}

// LeaderboardSnapshot is the client-facing view of one ranking tab.
type LeaderboardSnapshot struct {
	Tab      models.LeaderboardTab     `json:"tab"`
	Entries  []models.LeaderboardEntry `json:"entries"`
	UserRank int                       `json:"userRank"`
	Total    int                       `json:"total"`
}

// LeaderboardService maintains the shared leaderboard. Every writer only
// replaces its own row; stale rows are swept during writes and the
// collection is capped by the current-streak ordering.
type LeaderboardService struct {
	store     LeaderboardStore
	publisher EventPublisher
	now       func() time.Time
}

// NewLeaderboardService creates a leaderboard service.
func NewLeaderboardService(store LeaderboardStore, publisher EventPublisher) *LeaderboardService {
	return &LeaderboardService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// SyncUser upserts the user's leaderboard row from their latest state and
// sweeps the collection. Failures are logged, never surfaced: the
// leaderboard is a best-effort side channel off the pick flow.
func (s *LeaderboardService) SyncUser(ctx context.Context, userKey string, state models.UserState) {
	logger := logging.WithPrefix("Leaderboard")

	if state.DisplayName == "" || !state.IsPublic {
		logger.Debugf("Skipping sync for %s: not publishable", userKey)
		return
	}

	now := s.now()
	entry := models.EntryFromState(userKey, state, now)

	if err := s.store.Upsert(ctx, entry); err != nil {
		logger.Warnf("Failed to upsert entry for %s: %v", userKey, err)
		return
	}

	s.sweep(ctx, entry.ID, now)

	if s.publisher != nil {
		if err := s.publisher.Publish("leaderboard_updated", entry.ID); err != nil {
			logger.Debugf("Broadcast failed: %v", err)
		}
	}

	logger.Debugf("Synced entry %s (streak %d)", entry.ID, entry.CurrentStreak)
}

// sweep removes stale rows and trims the collection past the storage cap.
// The acting user's own row always survives.
func (s *LeaderboardService) sweep(ctx context.Context, selfID string, now time.Time) {
	logger := logging.WithPrefix("Leaderboard")

	entries, err := s.store.LoadAll(ctx)
	if err != nil {
		logger.Warnf("Sweep skipped, load failed: %v", err)
		return
	}

	kept := models.PruneStale(entries, selfID, now)
	models.SortEntries(kept, models.TabCurrent)
	if len(kept) > models.LeaderboardMaxEntries {
		kept = kept[:models.LeaderboardMaxEntries]
	}

	retained := make(map[string]bool, len(kept))
	for _, e := range kept {
		retained[e.ID] = true
	}
	var removed []string
	for _, e := range entries {
		if !retained[e.ID] {
			removed = append(removed, e.ID)
		}
	}
	if len(removed) == 0 {
		return
	}
	if err := s.store.DeleteIDs(ctx, removed); err != nil {
		logger.Warnf("Failed to remove %d swept entries: %v", len(removed), err)
		return
	}
	logger.Infof("Swept %d stale leaderboard entries", len(removed))
}

// Snapshot returns the requested tab sorted and truncated for display,
// with the acting user's rank computed over the full filtered set.
func (s *LeaderboardService) Snapshot(ctx context.Context, userKey string, tab models.LeaderboardTab, search string) (*LeaderboardSnapshot, error) {
	switch tab {
	case models.TabCurrent, models.TabBest, models.TabWeekly:
	case "":
		tab = models.TabCurrent
	default:
		return nil, fmt.Errorf("unknown leaderboard tab %q", tab)
	}

	entries, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}

	entries = models.FilterEntries(entries, search)
	models.SortEntries(entries, tab)

	selfID := strconv.FormatInt(models.HashID(userKey), 10)
	rank := models.RankOf(entries, selfID)

	display := entries
	if len(display) > models.LeaderboardDisplaySize {
		display = display[:models.LeaderboardDisplaySize]
	}

	return &LeaderboardSnapshot{
		Tab:      tab,
		Entries:  display,
		UserRank: rank,
		Total:    len(entries),
	}, nil
}
