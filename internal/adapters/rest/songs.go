package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yearworm/backend/internal/core/domain"
)

// earliestYear bounds catalog entries; recordings older than this are
// assumed to be typos.
const earliestYear = 1900

type addSongRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
}

func (req addSongRequest) validate() error {
	if req.Title == "" || req.Artist == "" {
		return errors.New("title and artist are required")
	}
	if req.Year < earliestYear || req.Year > time.Now().Year() {
		return fmt.Errorf("year must be between %d and %d", earliestYear, time.Now().Year())
	}
	return nil
}

// AddSong handles POST /songs
func (h *Handler) AddSong(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	song := domain.Song{Title: req.Title, Artist: req.Artist, Year: req.Year}
	if err := h.svc.AddSong(r.Context(), song); err != nil {
		if errors.Is(err, domain.ErrDuplicateSong) {
			writeError(w, http.StatusConflict, "song already in the catalog")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

type setCuratedRequest struct {
	Songs []addSongRequest `json:"songs"`
}

// SetCuratedDay handles POST /curated/{date}
func (h *Handler) SetCuratedDay(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	date := r.PathValue("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var req setCuratedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	songs := make([]domain.Song, 0, len(req.Songs))
	for _, entry := range req.Songs {
		if err := entry.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		songs = append(songs, domain.Song{Title: entry.Title, Artist: entry.Artist, Year: entry.Year})
	}

	if err := h.svc.SetCuratedDay(r.Context(), date, songs); err != nil {
		if errors.Is(err, domain.ErrScheduleDayFull) {
			writeError(w, http.StatusBadRequest, "a curated day holds at most five songs")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
