package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/slide-backend/internal/apperror"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type createGameRequest struct {
	PlayerID string `json:"player_id"`
	Mode     string `json:"mode"`
}

type turnRequest struct {
	PlayerID string `json:"player_id"`
	Label    string `json:"label"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errPlayerIDRequired = errors.New("player_id is required")

func (that *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
			return
		}
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, "handleCreatePlayer", err)
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

func (that *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.gameUseCase.PlayerStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "handlePlayerStats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, "handleCreateGame", errPlayerIDRequired)
		return
	}

	if req.Mode == "" {
		req.Mode = entity.OnePlayerMode
	}

	game, err := that.gameUseCase.GetOrCreateGame(r.Context(), req.PlayerID, req.Mode)
	if err != nil {
		that.writeError(w, "handleCreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "handleGetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, "handleJoinGame", errPlayerIDRequired)
		return
	}

	game, err := that.gameUseCase.JoinGame(r.Context(), chi.URLParam(r, "id"), req.PlayerID)
	if err != nil {
		that.writeError(w, "handleJoinGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// handleMakeTurn - a finished game is a successful turn, the response carries the final state.
func (that *Server) handleMakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	label, err := entity.ParseLabel(req.Label)
	if err != nil {
		that.writeError(w, "handleMakeTurn", err)
		return
	}

	if !that.playerInGame(w, r, req.PlayerID) {
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), req.PlayerID, label)
	if errors.Is(err, apperror.ErrGameFinished) && game != nil {
		writeJSON(w, http.StatusOK, game)
		return
	}

	if err != nil {
		that.writeError(w, "handleMakeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")

	if !that.playerInGame(w, r, playerID) {
		return
	}

	suggestion, err := that.gameUseCase.SuggestMove(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "handleSuggestion", err)
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}

// playerInGame - checks that the player sits in the game named by the url.
func (that *Server) playerInGame(w http.ResponseWriter, r *http.Request, playerID string) bool {
	if playerID == "" {
		that.writeError(w, "playerInGame", errPlayerIDRequired)
		return false
	}

	game, err := that.gameUseCase.GetGameByPlayerID(r.Context(), playerID)
	if err != nil {
		that.writeError(w, "playerInGame", err)
		return false
	}

	if game.ID != chi.URLParam(r, "id") {
		that.writeError(w, "playerInGame", apperror.ErrPlayerNotInGame)
		return false
	}

	return true
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var invalidMove *entity.InvalidMoveError

	switch {
	case errors.As(err, &invalidMove),
		errors.Is(err, entity.ErrInvalidMode),
		errors.Is(err, entity.ErrInvalidPlayer),
		errors.Is(err, errPlayerIDRequired):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrPlayerNotInGame),
		errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameIsFull),
		errors.Is(err, apperror.ErrGameAlreadyExists),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
