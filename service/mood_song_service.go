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

// MoodCache holds the mood aggregation (distinct moods with song counts).
// Every write that can change the counts must invalidate it; that includes
// song deletions, whose mood links cascade away at the database.
type MoodCache interface {
	Get(ctx context.Context) ([]model.MoodCount, bool)
	Set(ctx context.Context, counts []model.MoodCount) error
	Invalidate(ctx context.Context) error
}

// DefaultRelevanceScore is used when a mapping is created without an
// explicit score. The upstream data never specified a baseline; 0.5 sits in
// the middle of the valid range.
const DefaultRelevanceScore = 0.5

// MoodPage is the pagination envelope for mood-filtered listings; it echoes
// the mood tag.
type MoodPage struct {
	Data     []*model.MoodSong `json:"data"`
	Total    int64             `json:"total"`
	Mood     string            `json:"mood"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// CreateMoodSongInput carries the fields for a new mood mapping.
type CreateMoodSongInput struct {
	Mood           string   `json:"mood"`
	SongID         int64    `json:"songId"`
	RelevanceScore *float64 `json:"relevanceScore"`
}

// UpdateMoodSongInput carries a partial mapping update; nil fields are
// untouched. Mood and relevance score can change independently.
type UpdateMoodSongInput struct {
	Mood           *string  `json:"mood"`
	RelevanceScore *float64 `json:"relevanceScore"`
}

// MoodSongService manages mood-to-song relevance links.
type MoodSongService struct {
	moodSongs repository.MoodSongRepository
	songs     repository.SongRepository
	moods     MoodCache
}

// NewMoodSongService creates a mood mapping service. The cache may be nil;
// the aggregation then always hits the database.
func NewMoodSongService(moodSongs repository.MoodSongRepository, songs repository.SongRepository, moods MoodCache) *MoodSongService {
	return &MoodSongService{moodSongs: moodSongs, songs: songs, moods: moods}
}

// Create links a song to a mood. The referenced song must exist; the
// (mood, songId) pair must be new. The exists-check gives a friendly error,
// but the composite unique index is what actually holds under concurrent
// inserts, so a duplicate-entry from the insert maps to the same Conflict.
func (s *MoodSongService) Create(ctx context.Context, in CreateMoodSongInput) (*model.MoodSong, error) {
	mood := strings.TrimSpace(strings.ToLower(in.Mood))
	if mood == "" {
		return nil, fmt.Errorf("%w: mood", ErrMissingField)
	}

	score := DefaultRelevanceScore
	if in.RelevanceScore != nil {
		score = *in.RelevanceScore
	}
	if score < 0 || score > 1 {
		return nil, ErrInvalidRelevanceScore
	}

	songExists, err := s.songs.ExistsByID(ctx, in.SongID)
	if err != nil {
		return nil, fmt.Errorf("failed to check song %d: %w", in.SongID, err)
	}
	if !songExists {
		return nil, ErrSongNotFound
	}

	taken, err := s.moodSongs.Exists(ctx, mood, in.SongID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mood mapping: %w", err)
	}
	if taken {
		return nil, ErrMoodSongExists
	}

	moodSong := &model.MoodSong{Mood: mood, SongID: in.SongID, RelevanceScore: score}
	if err := s.moodSongs.Create(ctx, moodSong); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrMoodSongExists
		}
		return nil, fmt.Errorf("failed to create mood mapping: %w", err)
	}

	s.invalidateMoods(ctx)
	return s.moodSongs.GetByID(ctx, moodSong.ID)
}

// ListByMood returns one page of songs for the mood, ranked by relevance
// score descending. Equal scores keep insertion order so repeated calls
// paginate identically.
func (s *MoodSongService) ListByMood(ctx context.Context, mood string, page, limit int) (*MoodPage, error) {
	mood = strings.TrimSpace(strings.ToLower(mood))
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	moodSongs, err := s.moodSongs.ListByMood(ctx, mood, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs for mood %q: %w", mood, err)
	}
	total, err := s.moodSongs.CountByMood(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("failed to count songs for mood %q: %w", mood, err)
	}

	return &MoodPage{Data: moodSongs, Total: total, Mood: mood, Page: page, PageSize: limit}, nil
}

// ListMoods returns the distinct mood tags with song counts, most populated
// first. The aggregation is served from the cache when warm.
func (s *MoodSongService) ListMoods(ctx context.Context) ([]model.MoodCount, error) {
	if s.moods != nil {
		if counts, ok := s.moods.Get(ctx); ok {
			return counts, nil
		}
	}

	counts, err := s.moodSongs.ListMoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate moods: %w", err)
	}

	if s.moods != nil {
		if err := s.moods.Set(ctx, counts); err != nil {
			logger.Warn("Failed to cache mood aggregation", logger.ErrorField(err))
		}
	}
	return counts, nil
}

// BySong returns every mood link for the song; the order is unspecified.
func (s *MoodSongService) BySong(ctx context.Context, songID int64) ([]*model.MoodSong, error) {
	songExists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to check song %d: %w", songID, err)
	}
	if !songExists {
		return nil, ErrSongNotFound
	}
	return s.moodSongs.ListBySong(ctx, songID)
}

// Get fetches one mapping by id.
func (s *MoodSongService) Get(ctx context.Context, id int64) (*model.MoodSong, error) {
	moodSong, err := s.moodSongs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood mapping %d: %w", id, err)
	}
	if moodSong == nil {
		return nil, ErrMoodSongNotFound
	}
	return moodSong, nil
}

// Update changes the mood tag and/or the relevance score. The pair is not
// re-validated here; the unique index turns an update that would duplicate
// an existing (mood, songId) pair into a Conflict.
func (s *MoodSongService) Update(ctx context.Context, id int64, in UpdateMoodSongInput) (*model.MoodSong, error) {
	existing, err := s.moodSongs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood mapping %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrMoodSongNotFound
	}

	fields := map[string]interface{}{}
	if in.Mood != nil {
		mood := strings.TrimSpace(strings.ToLower(*in.Mood))
		if mood == "" {
			return nil, fmt.Errorf("%w: mood", ErrMissingField)
		}
		fields["mood"] = mood
	}
	if in.RelevanceScore != nil {
		if *in.RelevanceScore < 0 || *in.RelevanceScore > 1 {
			return nil, ErrInvalidRelevanceScore
		}
		fields["relevance_score"] = *in.RelevanceScore
	}

	if len(fields) > 0 {
		if err := s.moodSongs.Updates(ctx, id, fields); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return nil, ErrMoodSongExists
			}
			return nil, fmt.Errorf("failed to update mood mapping %d: %w", id, err)
		}
		s.invalidateMoods(ctx)
	}
	return s.moodSongs.GetByID(ctx, id)
}

// Delete removes the mapping.
func (s *MoodSongService) Delete(ctx context.Context, id int64) error {
	existing, err := s.moodSongs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get mood mapping %d: %w", id, err)
	}
	if existing == nil {
		return ErrMoodSongNotFound
	}
	if err := s.moodSongs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete mood mapping %d: %w", id, err)
	}
	s.invalidateMoods(ctx)
	return nil
}

func (s *MoodSongService) invalidateMoods(ctx context.Context) {
	if s.moods == nil {
		return
	}
	if err := s.moods.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate mood aggregation cache", logger.ErrorField(err))
	}
}
