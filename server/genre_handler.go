package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// GenreHandler handles genre requests.
type GenreHandler struct {
	catalog *service.CatalogService
}

// NewGenreHandler creates a genre handler.
func NewGenreHandler(catalog *service.CatalogService) *GenreHandler {
	return &GenreHandler{catalog: catalog}
}

// ListGenresHandler returns all genres.
func (h *GenreHandler) ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// CreateGenreHandler creates a genre.
func (h *GenreHandler) CreateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	genre, err := h.catalog.CreateGenre(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, genre)
}

// UpdateGenreHandler applies a partial update.
func (h *GenreHandler) UpdateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	genre, err := h.catalog.UpdateGenre(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

// DeleteGenreHandler removes a genre; its songs keep existing without a
// genre reference.
func (h *GenreHandler) DeleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	if err := h.catalog.DeleteGenre(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("genre %d deleted", id),
	})
}
