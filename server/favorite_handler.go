package server

import (
	"encoding/json"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// FavoriteHandler handles favorite requests. The userId travels as a query
// parameter for compatibility with the web client.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a favorite handler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func userIDFromQuery(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		return 0, false
	}
	id, err := parseID(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// AddFavoriteHandler bookmarks a song for the user.
func (h *FavoriteHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	var req struct {
		SongID   int64  `json:"songId"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	favorite, err := h.favorites.Add(r.Context(), userID, req.SongID, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, favorite)
}

// ListFavoritesHandler returns one page of the user's favorites.
func (h *FavoriteHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.favorites.List(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RemoveFavoriteHandler deletes the bookmark for (userId, songId).
func (h *FavoriteHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	songID, err := parseID(mux.Vars(r)["songId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, songID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}

// CheckFavoriteHandler reports whether the song is bookmarked. A missing
// userId is answered with false rather than an error; the check contract
// never throws for an absent user.
func (h *FavoriteHandler) CheckFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	songID, err := parseID(mux.Vars(r)["songId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	userID, ok := userIDFromQuery(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": false})
		return
	}

	isFavorite, err := h.favorites.IsFavorite(r.Context(), userID, songID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": isFavorite})
}
