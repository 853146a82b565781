package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"streak-pickem-go/config"
	"streak-pickem-go/logging"
	"streak-pickem-go/middleware"
	"streak-pickem-go/models"
	"streak-pickem-go/services"
)

// GameHandler serves the daily matchup and pick endpoints
type GameHandler struct {
	pickService *services.PickService
	config      *config.Config
}

// NewGameHandler creates a new game handler
func NewGameHandler(pickService *services.PickService, cfg *config.Config) *GameHandler {
	return &GameHandler{
		pickService: pickService,
		config:      cfg,
	}
}

// matchupResponse bundles today's matchup with the caller's state
type matchupResponse struct {
	Matchup *models.Matchup  `json:"matchup"`
	State   models.UserState `json:"state"`
}

// GetMatchup returns today's matchup and the caller's current state
func (h *GameHandler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	matchup, state, err := h.pickService.TodaysMatchup(r.Context(), user)
	if err != nil {
		logging.WithPrefix("GameHandler").Errorf("Failed to resolve matchup: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load matchup")
		return
	}

	writeJSON(w, http.StatusOK, matchupResponse{Matchup: matchup, State: state})
}

// pickRequest is the POST /api/pick body
type pickRequest struct {
	SelectedTeam models.Side `json:"selectedTeam"`
}

// MakePick records the caller's pick for today
func (h *GameHandler) MakePick(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.pickService.MakePick(r.Context(), user, req.SelectedTeam)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSide):
			writeError(w, http.StatusBadRequest, "selectedTeam must be home or away")
		case errors.Is(err, services.ErrAlreadyPicked):
			writeError(w, http.StatusConflict, "you have already picked for today")
		case errors.Is(err, services.ErrGameStarted):
			writeError(w, http.StatusConflict, "the game has already started")
		default:
			logging.WithPrefix("GameHandler").Errorf("Pick failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to record pick")
		}
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GetState returns the caller's current streak state
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	state, err := h.pickService.State(r.Context(), user)
	if err != nil {
		logging.WithPrefix("GameHandler").Errorf("Failed to load state: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GetResults returns the caller's rolling result history
func (h *GameHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	results, err := h.pickService.Results(r.Context(), user)
	if err != nil {
		logging.WithPrefix("GameHandler").Errorf("Failed to load results: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if results == nil {
		results = []models.ResultRecord{}
	}

	writeJSON(w, http.StatusOK, results)
}

// GetShareText returns a share message for the caller's current standing
func (h *GameHandler) GetShareText(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	shareType := services.ShareType(r.URL.Query().Get("type"))
	if shareType == "" {
		shareType = services.ShareStreak
	}

	matchup, state, err := h.pickService.TodaysMatchup(r.Context(), user)
	if err != nil {
		logging.WithPrefix("GameHandler").Errorf("Failed to build share text: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build share text")
		return
	}

	text := services.GenerateShareText(shareType, state, matchup, h.config.App.AppURL)
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// UpdatePreferences applies partial preference changes for the caller
func (h *GameHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var prefs services.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.pickService.UpdatePreferences(r.Context(), user, prefs)
	if err != nil {
		logging.WithPrefix("GameHandler").Errorf("Failed to update preferences: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}

	writeJSON(w, http.StatusOK, state)
}
