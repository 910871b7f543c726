package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yearworm/backend/internal/core/domain"
)

const errCodeGameNotFound = "GAME_NOT_FOUND"

type startGameRequest struct {
	Mode             string `json:"mode"`
	ShowTitle        bool   `json:"show_title"`
	ShowArtist       bool   `json:"show_artist"`
	UnlimitedGuesses bool   `json:"unlimited_guesses"`
}

type startGameResponse struct {
	GameID string `json:"game_id"`
	Mode   string `json:"mode"`
	Score  int    `json:"score"`
}

// StartGame handles POST /games
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode := domain.Mode(req.Mode)
	if mode != domain.ModeDaily && mode != domain.ModeFree {
		writeError(w, http.StatusBadRequest, "mode must be daily or free")
		return
	}

	opts := domain.Options{
		ShowTitle:        req.ShowTitle,
		ShowArtist:       req.ShowArtist,
		UnlimitedGuesses: req.UnlimitedGuesses,
	}
	id, err := h.svc.StartGame(r.Context(), mode, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCatalog) {
			writeError(w, http.StatusServiceUnavailable, "not enough songs to start a game")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     gameCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, startGameResponse{
		GameID: id,
		Mode:   string(mode),
		Score:  domain.StartingScore,
	})
}

// gameID pulls the session id from the cookie.
func gameID(r *http.Request) string {
	cookie, err := r.Cookie(gameCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

type roundSongResponse struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	PreviewURL  string `json:"preview_url"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"total_rounds,omitempty"`
	Score       int    `json:"score"`
	GameOver    bool   `json:"game_over"`
	FinalScore  int    `json:"final_score,omitempty"`
}

// RoundSong handles GET /game/song
func (h *Handler) RoundSong(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if id == "" {
		writeErrorWithCode(w, http.StatusNotFound, "no active game", errCodeGameNotFound)
		return
	}

	info, err := h.svc.RoundSong(r.Context(), id)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roundSongResponse{
		Title:       info.Title,
		Artist:      info.Artist,
		PreviewURL:  info.PreviewURL,
		Round:       info.Round,
		TotalRounds: info.TotalRounds,
		Score:       info.Score,
		GameOver:    info.GameOver,
		FinalScore:  info.FinalScore,
	})
}

// Year is a pointer so a missing field is distinguishable from a
// literal guess of year zero.
type guessRequest struct {
	Year *int `json:"year"`
}

type guessResponse struct {
	Correct    bool   `json:"correct"`
	Difference int    `json:"difference"`
	ActualYear int    `json:"actual_year,omitempty"`
	Artist     string `json:"artist,omitempty"`
	PointsLost int    `json:"points_lost"`
	Score      int    `json:"score"`
	Round      int    `json:"round"`
	GameOver   bool   `json:"game_over"`
	TryAgain   bool   `json:"try_again,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// Guess handles POST /game/guess
func (h *Handler) Guess(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	id := gameID(r)
	if id == "" {
		writeErrorWithCode(w, http.StatusNotFound, "no active game", errCodeGameNotFound)
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Year == nil {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}

	outcome, err := h.svc.Guess(r.Context(), id, *req.Year)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	resp := guessResponse{
		Correct:    outcome.Correct,
		Difference: outcome.Difference,
		PointsLost: outcome.PointsLost,
		Score:      outcome.Score,
		Round:      outcome.Round,
		GameOver:   outcome.GameOver,
		TryAgain:   outcome.TryAgain,
		Hint:       outcome.Hint,
	}
	// A retried guess keeps the answer hidden.
	if !outcome.TryAgain {
		resp.ActualYear = outcome.ActualYear
		resp.Artist = outcome.Artist
	}
	writeJSON(w, http.StatusOK, resp)
}

type endGameResponse struct {
	FinalScore int `json:"final_score"`
}

// EndGame handles POST /game/end
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if id == "" {
		writeErrorWithCode(w, http.StatusNotFound, "no active game", errCodeGameNotFound)
		return
	}

	score, err := h.svc.EndGame(r.Context(), id)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   gameCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, endGameResponse{FinalScore: score})
}

// writeGameError maps service failures onto HTTP statuses. A vanished
// session gets a code the frontend uses to restart.
func (h *Handler) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		writeErrorWithCode(w, http.StatusNotFound, "game not found", errCodeGameNotFound)
	case errors.Is(err, domain.ErrNoActiveSong):
		writeError(w, http.StatusBadRequest, "no song in play, fetch the round first")
	case errors.Is(err, domain.ErrInsufficientCatalog):
		writeError(w, http.StatusServiceUnavailable, "not enough songs in the catalog")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Stats handles GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
