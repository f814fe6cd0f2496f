package server

import (
	"encoding/json"
	"net/http"

	"MoodSync/service"
)

// EmotionHandler serves the emotion history endpoints.
type EmotionHandler struct {
	emotions *service.EmotionService
}

// NewEmotionHandler creates an emotion handler.
func NewEmotionHandler(emotions *service.EmotionService) *EmotionHandler {
	return &EmotionHandler{emotions: emotions}
}

// RecordEmotionHandler stores one detected emotion for the current user.
func (h *EmotionHandler) RecordEmotionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.RecordEmotionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.emotions.Record(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// ListEmotionsHandler returns one page of the user's emotion history,
// newest first.
func (h *EmotionHandler) ListEmotionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.emotions.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// LatestEmotionHandler returns the user's most recent emotion record.
func (h *EmotionHandler) LatestEmotionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	record, err := h.emotions.Latest(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
