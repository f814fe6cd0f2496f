package server

import (
	"net/http"
	"strconv"

	"MoodSync/service"
)

// RecommendationHandler serves mood-seeded song recommendations.
type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

// NewRecommendationHandler creates a recommendation handler.
func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return service.DefaultPageSize
	}
	return limit
}

// ByMoodHandler recommends songs for an explicit mood tag. The endpoint is
// public; when a valid token is presented the results carry per-user
// favorite flags.
func (h *RecommendationHandler) ByMoodHandler(w http.ResponseWriter, r *http.Request) {
	mood := r.URL.Query().Get("mood")
	limit := parseLimit(r)

	var userID *int64
	if id, ok := GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	recs, err := h.recommendations.ForMood(r.Context(), userID, mood, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mood": mood,
		"data": recs,
	})
}

// ForMeHandler recommends songs seeded by the user's latest detected emotion.
func (h *RecommendationHandler) ForMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	limit := parseLimit(r)

	mood, recs, err := h.recommendations.ForUser(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mood": mood,
		"data": recs,
	})
}
