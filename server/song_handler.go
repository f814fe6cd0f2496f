package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"MoodSync/logger"
	"MoodSync/service"
	"MoodSync/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SongHandler handles song catalog requests.
type SongHandler struct {
	catalog *service.CatalogService
}

// NewSongHandler creates a song handler.
func NewSongHandler(catalog *service.CatalogService) *SongHandler {
	return &SongHandler{catalog: catalog}
}

// ListSongsHandler returns one page of the catalog.
func (h *SongHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.catalog.ListSongs(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SearchSongsHandler searches title/artist/album for a substring.
func (h *SongHandler) SearchSongsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, service.DefaultPageSize)
	query := r.URL.Query().Get("q")

	result, err := h.catalog.SearchSongs(r.Context(), query, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SongsByGenreHandler filters the catalog by genre id.
func (h *SongHandler) SongsByGenreHandler(w http.ResponseWriter, r *http.Request) {
	genreID, err := parseID(mux.Vars(r)["genreId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid genre id")
		return
	}
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.catalog.SongsByGenre(r.Context(), genreID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetSongHandler fetches one song.
func (h *SongHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.catalog.GetSong(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// CreateSongHandler creates a catalog entry.
func (h *SongHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := h.catalog.CreateSong(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.Info("Song created",
		logger.Int64("songId", song.ID),
		logger.String("title", song.Title),
	)
	writeJSON(w, http.StatusCreated, song)
}

// UpdateSongHandler applies a partial update.
func (h *SongHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	var in service.UpdateSongInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := h.catalog.UpdateSong(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// DeleteSongHandler removes a song.
func (h *SongHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := h.catalog.DeleteSong(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	logger.Info("Song deleted", logger.Int64("songId", id))
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("song %d deleted", id),
	})
}

// UploadCoverHandler stores a cover image in object storage and points the
// song's imageUrl at it. Expected multipart form field: coverFile.
func (h *SongHandler) UploadCoverHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if storage.GetMinioClient() == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10 MiB
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("coverFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "coverFile field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		writeError(w, http.StatusBadRequest, "cover must be a JPEG or PNG image")
		return
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	objectName := fmt.Sprintf("covers/song_%d_%s%s", id, uuid.NewString(), ext)
	imageURL, err := storage.PutObject(r.Context(), objectName, file, header.Size, contentType)
	if err != nil {
		logger.Error("Failed to upload cover",
			logger.Int64("songId", id),
			logger.ErrorField(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to upload cover")
		return
	}

	if err := h.catalog.SetSongImage(r.Context(), id, imageURL); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}
