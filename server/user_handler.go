package server

import (
	"encoding/json"
	"net/http"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

// UserHandler serves user listing and profile endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsersHandler returns one page of users.
func (h *UserHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, service.DefaultUserPageSize)

	result, err := h.users.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetUserHandler returns a single user's public profile.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ProfileHandler returns the authenticated user's profile.
func (h *UserHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateOwnProfileHandler updates the authenticated user's profile fields.
func (h *UserHandler) UpdateOwnProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
