package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// MoodSongHandler handles mood mapping requests.
type MoodSongHandler struct {
	moodSongs *service.MoodSongService
}

// NewMoodSongHandler creates a mood mapping handler.
func NewMoodSongHandler(moodSongs *service.MoodSongService) *MoodSongHandler {
	return &MoodSongHandler{moodSongs: moodSongs}
}

// ListMoodsHandler returns the distinct mood tags with song counts.
func (h *MoodSongHandler) ListMoodsHandler(w http.ResponseWriter, r *http.Request) {
	moods, err := h.moodSongs.ListMoods(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": moods})
}

// ListByMoodHandler returns one page of ranked songs for a mood.
func (h *MoodSongHandler) ListByMoodHandler(w http.ResponseWriter, r *http.Request) {
	mood := mux.Vars(r)["mood"]
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.moodSongs.ListByMood(r.Context(), mood, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BySongHandler returns every mood link for a song.
func (h *MoodSongHandler) BySongHandler(w http.ResponseWriter, r *http.Request) {
	songID, err := parseID(mux.Vars(r)["songId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	moodSongs, err := h.moodSongs.BySong(r.Context(), songID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": moodSongs})
}

// GetMoodSongHandler fetches one mapping.
func (h *MoodSongHandler) GetMoodSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mood mapping id")
		return
	}

	moodSong, err := h.moodSongs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moodSong)
}

// CreateMoodSongHandler links a song to a mood.
func (h *MoodSongHandler) CreateMoodSongHandler(w http.ResponseWriter, r *http.Request) {
	var in service.CreateMoodSongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moodSong, err := h.moodSongs.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, moodSong)
}

// UpdateMoodSongHandler changes the mood tag and/or relevance score.
func (h *MoodSongHandler) UpdateMoodSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mood mapping id")
		return
	}

	var in service.UpdateMoodSongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moodSong, err := h.moodSongs.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moodSong)
}

// DeleteMoodSongHandler removes a mapping.
func (h *MoodSongHandler) DeleteMoodSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mood mapping id")
		return
	}

	if err := h.moodSongs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("mood mapping %d deleted", id),
	})
}
