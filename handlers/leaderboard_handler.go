package handlers

import (
	"net/http"
	"streak-pickem-go/logging"
	"streak-pickem-go/middleware"
	"streak-pickem-go/models"
	"streak-pickem-go/services"
)

// LeaderboardHandler serves the shared leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
	pickService        *services.PickService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService, pickService *services.PickService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		pickService:        pickService,
	}
}

// GetLeaderboard returns the requested ranking tab, optionally filtered
// by a display-name search term
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	tab := models.LeaderboardTab(r.URL.Query().Get("tab"))
	search := r.URL.Query().Get("search")

	snapshot, err := h.leaderboardService.Snapshot(r.Context(), user.StorageKey(), tab, search)
	if err != nil {
		logging.WithPrefix("LeaderboardHandler").Errorf("Failed to load leaderboard: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// RefreshLeaderboard pushes the caller's latest state to the leaderboard
// and returns the refreshed current tab
func (h *LeaderboardHandler) RefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	state, err := h.pickService.State(r.Context(), user)
	if err != nil {
		logging.WithPrefix("LeaderboardHandler").Errorf("Failed to load state for refresh: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh leaderboard")
		return
	}

	h.leaderboardService.SyncUser(r.Context(), user.StorageKey(), state)

	snapshot, err := h.leaderboardService.Snapshot(r.Context(), user.StorageKey(), models.TabCurrent, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
