package server

import (
	"encoding/json"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// FeedbackHandler serves the recommendation feedback endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler creates a feedback handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// CreateFeedbackHandler records a rating for a recommendation.
func (h *FeedbackHandler) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.CreateFeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.feedback.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListFeedbackHandler returns one page of the user's feedback, newest first.
func (h *FeedbackHandler) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := parsePagination(r, service.DefaultPageSize)

	result, err := h.feedback.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteFeedbackHandler removes one of the user's own feedback entries.
func (h *FeedbackHandler) DeleteFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}

	if err := h.feedback.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "feedback deleted"})
}
