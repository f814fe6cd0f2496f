package server

import (
	"encoding/json"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// PlaylistHandler serves playlist CRUD and membership endpoints. All routes
// are authenticated; the owner comes from the request context.
type PlaylistHandler struct {
	playlists *service.PlaylistService
}

// NewPlaylistHandler creates a playlist handler.
func NewPlaylistHandler(playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// CreatePlaylistHandler creates an empty playlist for the current user.
func (h *PlaylistHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.playlists.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// ListPlaylistsHandler returns all playlists owned by the current user.
func (h *PlaylistHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler returns one playlist with its songs in order.
func (h *PlaylistHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, err := h.playlists.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// UpdatePlaylistHandler renames or re-describes a playlist.
func (h *PlaylistHandler) UpdatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	var in service.UpdatePlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.playlists.Update(r.Context(), userID, id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// DeletePlaylistHandler deletes a playlist and its memberships.
func (h *PlaylistHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	if err := h.playlists.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "playlist deleted"})
}

// AddPlaylistSongHandler appends a song to the end of the playlist.
func (h *PlaylistHandler) AddPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	var req struct {
		SongID int64 `json:"songId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.playlists.AddSong(r.Context(), userID, id, req.SongID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// RemovePlaylistSongHandler removes a song from the playlist.
func (h *PlaylistHandler) RemovePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	vars := mux.Vars(r)
	id, err := parseID(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	songID, err := parseID(vars["songId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.playlists.RemoveSong(r.Context(), userID, id, songID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "song removed from playlist"})
}
