package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"MoodSync/logger"
	"MoodSync/service"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", logger.ErrorField(err))
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service-layer errors to HTTP statuses: not-found
// variants to 404, conflicts to 409, validation failures to 400 and
// everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSongNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrMoodSongNotFound),
		errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrFeedbackNotFound),
		errors.Is(err, service.ErrEmotionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGenreExists),
		errors.Is(err, service.ErrMoodSongExists),
		errors.Is(err, service.ErrFavoriteExists),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPlaylistSongExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidRelevanceScore),
		errors.Is(err, service.ErrInvalidConfidence),
		errors.Is(err, service.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("Unhandled service error", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parsePagination reads page/limit query parameters, falling back to page 1
// and the given default limit.
func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	page := 1
	limit := defaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return page, limit
}

// parseID parses a path variable as an int64 id.
func parseID(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}
