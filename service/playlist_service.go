package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MoodSync/model"
	"MoodSync/repository"
)

// UpdatePlaylistInput carries a partial playlist update; nil fields are
// untouched.
type UpdatePlaylistInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PlaylistService manages user playlists and their memberships.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	songs     repository.SongRepository
}

// NewPlaylistService creates a playlist service.
func NewPlaylistService(playlists repository.PlaylistRepository, songs repository.SongRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, songs: songs}
}

// Create makes an empty playlist for the user.
func (s *PlaylistService) Create(ctx context.Context, userID int64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	playlist := &model.Playlist{UserID: userID, Name: strings.TrimSpace(name), Description: description}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

// ListByUser returns the user's playlists, newest first.
func (s *PlaylistService) ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	return s.playlists.ListByUser(ctx, userID)
}

// Get fetches one playlist with its songs in position order. Playlists owned
// by another user look like missing playlists.
func (s *PlaylistService) Get(ctx context.Context, userID, id int64) (*model.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist %d: %w", id, err)
	}
	if playlist == nil || playlist.UserID != userID {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

// Update overwrites only the fields present in the input.
func (s *PlaylistService) Update(ctx context.Context, userID, id int64, in UpdatePlaylistInput) (*model.Playlist, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name", ErrMissingField)
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}

	if len(fields) > 0 {
		if err := s.playlists.Updates(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update playlist %d: %w", id, err)
		}
	}
	return s.playlists.GetByID(ctx, id)
}

// Delete removes the playlist and its membership rows.
func (s *PlaylistService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete playlist %d: %w", id, err)
	}
	return nil
}

// AddSong appends a song to the playlist. The song must exist and may appear
// only once per playlist.
func (s *PlaylistService) AddSong(ctx context.Context, userID, playlistID, songID int64) (*model.Playlist, error) {
	if _, err := s.Get(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	songExists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to check song %d: %w", songID, err)
	}
	if !songExists {
		return nil, ErrSongNotFound
	}

	maxPos, err := s.playlists.MaxPosition(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist position: %w", err)
	}

	entry := &model.PlaylistSong{PlaylistID: playlistID, SongID: songID, Position: maxPos + 1}
	if err := s.playlists.AddSong(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrPlaylistSongExists
		}
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}
	return s.playlists.GetByID(ctx, playlistID)
}

// RemoveSong removes a song from the playlist.
func (s *PlaylistService) RemoveSong(ctx context.Context, userID, playlistID, songID int64) error {
	if _, err := s.Get(ctx, userID, playlistID); err != nil {
		return err
	}

	affected, err := s.playlists.RemoveSong(ctx, playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}
