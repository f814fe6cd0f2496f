package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"MoodSync/service"

	"github.com/gorilla/mux"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url       string
		defLimit  int
		wantPage  int
		wantLimit int
	}{
		{"/api/songs", 20, 1, 20},
		{"/api/songs?page=3&limit=5", 20, 3, 5},
		{"/api/songs?page=0&limit=-2", 20, 1, 20},
		{"/api/songs?page=abc&limit=xyz", 20, 1, 20},
		{"/api/users", 10, 1, 10},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.url, nil)
		page, limit := parsePagination(r, tt.defLimit)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("parsePagination(%q, %d) = (%d, %d), want (%d, %d)",
				tt.url, tt.defLimit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrSongNotFound, http.StatusNotFound},
		{service.ErrPlaylistNotFound, http.StatusNotFound},
		{service.ErrMoodSongExists, http.StatusConflict},
		{service.ErrEmailTaken, http.StatusConflict},
		{fmt.Errorf("%w: mood", service.ErrMissingField), http.StatusBadRequest},
		{service.ErrInvalidRelevanceScore, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		writeServiceError(w, tt.err)
		if w.Code != tt.wantStatus {
			t.Errorf("writeServiceError(%v) wrote status %d, want %d", tt.err, w.Code, tt.wantStatus)
		}
	}

	// Internal failures must not leak their message to the client.
	w := httptest.NewRecorder()
	writeServiceError(w, errors.New("database exploded"))
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("internal error message leaked: %q", body["error"])
	}
}

func TestCheckFavoriteWithoutUserAnswersFalse(t *testing.T) {
	handler := NewFavoriteHandler(nil)

	router := mux.NewRouter()
	router.HandleFunc("/api/favorites/check/{songId}", handler.CheckFavoriteHandler).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/favorites/check/7", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if isFavorite, ok := body["isFavorite"]; !ok || isFavorite {
		t.Errorf("expected {\"isFavorite\": false}, got %v", body)
	}
}
