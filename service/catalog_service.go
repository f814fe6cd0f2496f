package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MoodSync/logger"
	"MoodSync/model"
	"MoodSync/repository"
)

// SongPage is the pagination envelope for song listings.
type SongPage struct {
	Data     []*model.Song `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// SongSearchPage is a SongPage that echoes the search query.
type SongSearchPage struct {
	Data     []*model.Song `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Query    string        `json:"query"`
}

// CreateSongInput carries the fields for a new song.
type CreateSongInput struct {
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Album      string  `json:"album"`
	Duration   float64 `json:"duration"`
	GenreID    *int64  `json:"genreId"`
	SpotifyID  string  `json:"spotifyId"`
	ImageURL   string  `json:"imageUrl"`
	PreviewURL string  `json:"previewUrl"`
}

// UpdateSongInput carries a partial song update; nil fields are untouched.
type UpdateSongInput struct {
	Title      *string  `json:"title"`
	Artist     *string  `json:"artist"`
	Album      *string  `json:"album"`
	Duration   *float64 `json:"duration"`
	GenreID    *int64   `json:"genreId"`
	SpotifyID  *string  `json:"spotifyId"`
	ImageURL   *string  `json:"imageUrl"`
	PreviewURL *string  `json:"previewUrl"`
}

// CatalogService manages songs and genres. It holds the mood aggregation
// cache because deleting a song cascades its mood links away at the
// database, which changes the aggregation without any mood-mapping call.
type CatalogService struct {
	songs  repository.SongRepository
	genres repository.GenreRepository
	moods  MoodCache
}

// NewCatalogService creates a catalog service. The cache may be nil.
func NewCatalogService(songs repository.SongRepository, genres repository.GenreRepository, moods MoodCache) *CatalogService {
	return &CatalogService{songs: songs, genres: genres, moods: moods}
}

// ListSongs returns one page of the catalog. The total row count comes from
// an independent COUNT query; under concurrent writes the two queries may
// observe slightly different states.
func (s *CatalogService) ListSongs(ctx context.Context, page, limit int) (*SongPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	songs, err := s.songs.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	total, err := s.songs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count songs: %w", err)
	}

	return &SongPage{Data: songs, Total: total, Page: page, PageSize: limit}, nil
}

// SearchSongs matches the query as a case-insensitive substring of title,
// artist or album. An empty query matches every song.
func (s *CatalogService) SearchSongs(ctx context.Context, query string, page, limit int) (*SongSearchPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	songs, err := s.songs.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	total, err := s.songs.CountSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	return &SongSearchPage{Data: songs, Total: total, Page: page, PageSize: limit, Query: query}, nil
}

// SongsByGenre filters the catalog by genre. An unknown genre id yields an
// empty page, not an error.
func (s *CatalogService) SongsByGenre(ctx context.Context, genreID int64, page, limit int) (*SongPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	songs, err := s.songs.ListByGenre(ctx, genreID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs by genre: %w", err)
	}
	total, err := s.songs.CountByGenre(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to count songs by genre: %w", err)
	}

	return &SongPage{Data: songs, Total: total, Page: page, PageSize: limit}, nil
}

// GetSong fetches one song with its genre and playlist memberships.
func (s *CatalogService) GetSong(ctx context.Context, id int64) (*model.Song, error) {
	song, err := s.songs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get song %d: %w", id, err)
	}
	if song == nil {
		return nil, ErrSongNotFound
	}
	return song, nil
}

// CreateSong inserts a new catalog entry. Duplicate (title, artist) pairs
// are allowed.
func (s *CatalogService) CreateSong(ctx context.Context, in CreateSongInput) (*model.Song, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(in.Artist) == "" {
		return nil, fmt.Errorf("%w: artist", ErrMissingField)
	}
	if in.GenreID != nil {
		exists, err := s.genres.ExistsByID(ctx, *in.GenreID)
		if err != nil {
			return nil, fmt.Errorf("failed to check genre %d: %w", *in.GenreID, err)
		}
		if !exists {
			return nil, ErrGenreNotFound
		}
	}

	song := &model.Song{
		Title:      strings.TrimSpace(in.Title),
		Artist:     strings.TrimSpace(in.Artist),
		Album:      in.Album,
		Duration:   in.Duration,
		GenreID:    in.GenreID,
		SpotifyID:  in.SpotifyID,
		ImageURL:   in.ImageURL,
		PreviewURL: in.PreviewURL,
	}
	if err := s.songs.Create(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return song, nil
}

// UpdateSong overwrites only the fields present in the input.
func (s *CatalogService) UpdateSong(ctx context.Context, id int64, in UpdateSongInput) (*model.Song, error) {
	existing, err := s.songs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get song %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrSongNotFound
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title", ErrMissingField)
		}
		fields["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Artist != nil {
		if strings.TrimSpace(*in.Artist) == "" {
			return nil, fmt.Errorf("%w: artist", ErrMissingField)
		}
		fields["artist"] = strings.TrimSpace(*in.Artist)
	}
	if in.Album != nil {
		fields["album"] = *in.Album
	}
	if in.Duration != nil {
		fields["duration"] = *in.Duration
	}
	if in.GenreID != nil {
		exists, err := s.genres.ExistsByID(ctx, *in.GenreID)
		if err != nil {
			return nil, fmt.Errorf("failed to check genre %d: %w", *in.GenreID, err)
		}
		if !exists {
			return nil, ErrGenreNotFound
		}
		fields["genre_id"] = *in.GenreID
	}
	if in.SpotifyID != nil {
		fields["spotify_id"] = *in.SpotifyID
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.PreviewURL != nil {
		fields["preview_url"] = *in.PreviewURL
	}

	if len(fields) > 0 {
		if err := s.songs.Updates(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update song %d: %w", id, err)
		}
	}
	return s.songs.GetByID(ctx, id)
}

// SetSongImage stores a new cover image URL for the song.
func (s *CatalogService) SetSongImage(ctx context.Context, id int64, imageURL string) error {
	existing, err := s.songs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get song %d: %w", id, err)
	}
	if existing == nil {
		return ErrSongNotFound
	}
	if err := s.songs.Updates(ctx, id, map[string]interface{}{"image_url": imageURL}); err != nil {
		return fmt.Errorf("failed to set song image: %w", err)
	}
	return nil
}

// DeleteSong removes the song; mood mappings, favorites and playlist entries
// referencing it cascade away. The cascaded mood links change the mood
// aggregation, so the cached copy is dropped too.
func (s *CatalogService) DeleteSong(ctx context.Context, id int64) error {
	exists, err := s.songs.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check song %d: %w", id, err)
	}
	if !exists {
		return ErrSongNotFound
	}
	if err := s.songs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, err)
	}
	s.invalidateMoods(ctx)
	return nil
}

func (s *CatalogService) invalidateMoods(ctx context.Context) {
	if s.moods == nil {
		return
	}
	if err := s.moods.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate mood aggregation cache", logger.ErrorField(err))
	}
}

// ListGenres returns all genres sorted by name.
func (s *CatalogService) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	return s.genres.List(ctx)
}

// CreateGenre inserts a genre; names are unique.
func (s *CatalogService) CreateGenre(ctx context.Context, name, description string) (*model.Genre, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	genre := &model.Genre{Name: strings.TrimSpace(name), Description: description}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrGenreExists
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

// UpdateGenre overwrites the provided fields; a renamed genre still has to
// keep the name unique.
func (s *CatalogService) UpdateGenre(ctx context.Context, id int64, name, description *string) (*model.Genre, error) {
	existing, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get genre %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrGenreNotFound
	}

	fields := map[string]interface{}{}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: name", ErrMissingField)
		}
		fields["name"] = strings.TrimSpace(*name)
	}
	if description != nil {
		fields["description"] = *description
	}

	if len(fields) > 0 {
		if err := s.genres.Updates(ctx, id, fields); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return nil, ErrGenreExists
			}
			return nil, fmt.Errorf("failed to update genre %d: %w", id, err)
		}
	}
	return s.genres.GetByID(ctx, id)
}

// DeleteGenre removes the genre; referencing songs survive with a NULL genre.
func (s *CatalogService) DeleteGenre(ctx context.Context, id int64) error {
	exists, err := s.genres.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check genre %d: %w", id, err)
	}
	if !exists {
		return ErrGenreNotFound
	}
	if err := s.genres.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete genre %d: %w", id, err)
	}
	return nil
}
