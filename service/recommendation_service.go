package service

import (
	"context"
	"fmt"
	"strings"

	"MoodSync/model"
	"MoodSync/repository"
)

// Recommendation is one ranked song for a mood, flagged when the requesting
// user already bookmarked it.
type Recommendation struct {
	Song           *model.Song `json:"song"`
	Mood           string      `json:"mood"`
	RelevanceScore float64     `json:"relevanceScore"`
	IsFavorite     bool        `json:"isFavorite"`
}

// RecommendationService ranks songs for moods, seeded either by an explicit
// mood tag or by the user's latest detected emotion.
type RecommendationService struct {
	moodSongs repository.MoodSongRepository
	favorites repository.FavoriteRepository
	emotions  repository.EmotionRepository
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(
	moodSongs repository.MoodSongRepository,
	favorites repository.FavoriteRepository,
	emotions repository.EmotionRepository,
) *RecommendationService {
	return &RecommendationService{moodSongs: moodSongs, favorites: favorites, emotions: emotions}
}

// ForMood returns the top songs for the mood by relevance. When userID is
// non-nil the results are flagged against the user's favorites.
func (s *RecommendationService) ForMood(ctx context.Context, userID *int64, mood string, limit int) ([]*Recommendation, error) {
	mood = strings.TrimSpace(strings.ToLower(mood))
	if mood == "" {
		return nil, fmt.Errorf("%w: mood", ErrMissingField)
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	moodSongs, err := s.moodSongs.ListByMood(ctx, mood, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank songs for mood %q: %w", mood, err)
	}

	recommendations := make([]*Recommendation, 0, len(moodSongs))
	for _, moodSong := range moodSongs {
		rec := &Recommendation{
			Song:           moodSong.Song,
			Mood:           moodSong.Mood,
			RelevanceScore: moodSong.RelevanceScore,
		}
		if userID != nil {
			isFav, err := s.favorites.Exists(ctx, *userID, moodSong.SongID)
			if err != nil {
				return nil, fmt.Errorf("failed to check favorite: %w", err)
			}
			rec.IsFavorite = isFav
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}

// ForUser derives the mood from the user's most recent emotion record. With
// no history it returns an empty mood and no recommendations, not an error.
func (s *RecommendationService) ForUser(ctx context.Context, userID int64, limit int) (string, []*Recommendation, error) {
	latest, err := s.emotions.LatestByUser(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get latest emotion: %w", err)
	}
	if latest == nil {
		return "", []*Recommendation{}, nil
	}

	recommendations, err := s.ForMood(ctx, &userID, latest.Emotion, limit)
	if err != nil {
		return "", nil, err
	}
	return latest.Emotion, recommendations, nil
}
