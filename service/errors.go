package service

import "errors"

// Service error taxonomy. Handlers map these to HTTP statuses with
// errors.Is: not-found variants to 404, conflict variants to 409 and
// validation variants to 400.
var (
	ErrSongNotFound     = errors.New("song not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrMoodSongNotFound = errors.New("mood mapping not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrEmotionNotFound  = errors.New("no emotion history")

	ErrGenreExists        = errors.New("genre name already exists")
	ErrMoodSongExists     = errors.New("mood mapping already exists for this song")
	ErrFavoriteExists     = errors.New("song is already in favorites")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPlaylistSongExists = errors.New("song is already in the playlist")

	ErrInvalidCredentials    = errors.New("invalid username/email or password")
	ErrInvalidRelevanceScore = errors.New("relevance score must be between 0 and 1")
	ErrInvalidConfidence     = errors.New("confidence must be between 0 and 1")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrMissingField          = errors.New("required field missing")
)
