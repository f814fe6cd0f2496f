package service

import (
	"context"
	"errors"
	"testing"

	"MoodSync/model"
)

type fakeEmotionRepo struct {
	records []*model.EmotionRecord
}

func (f *fakeEmotionRepo) Create(ctx context.Context, record *model.EmotionRecord) error {
	record.ID = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return nil
}

func (f *fakeEmotionRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.EmotionRecord, error) {
	var out []*model.EmotionRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEmotionRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, r := range f.records {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEmotionRepo) LatestByUser(ctx context.Context, userID int64) (*model.EmotionRecord, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			return f.records[i], nil
		}
	}
	return nil, nil
}

func TestForMoodFlagsFavorites(t *testing.T) {
	moodSongs := newFakeMoodSongRepo()
	moodSongs.listed = []*model.MoodSong{
		{ID: 1, Mood: "happy", SongID: 1, RelevanceScore: 0.9, Song: &model.Song{ID: 1, Title: "A", Artist: "X"}},
		{ID: 2, Mood: "happy", SongID: 2, RelevanceScore: 0.7, Song: &model.Song{ID: 2, Title: "B", Artist: "Y"}},
	}
	favorites := newFakeFavoriteRepo()
	favorites.byKey[[2]int64{10, 2}] = &model.Favorite{ID: 1, UserID: 10, SongID: 2}
	svc := NewRecommendationService(moodSongs, favorites, &fakeEmotionRepo{})

	userID := int64(10)
	recs, err := svc.ForMood(context.Background(), &userID, " Happy ", 20)
	if err != nil {
		t.Fatalf("ForMood returned error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].IsFavorite || !recs[1].IsFavorite {
		t.Errorf("favorite flags wrong: %v %v", recs[0].IsFavorite, recs[1].IsFavorite)
	}
	if recs[0].RelevanceScore != 0.9 {
		t.Errorf("expected highest relevance first, got %v", recs[0].RelevanceScore)
	}
}

func TestForMoodAnonymous(t *testing.T) {
	moodSongs := newFakeMoodSongRepo()
	moodSongs.listed = []*model.MoodSong{
		{ID: 1, Mood: "calm", SongID: 1, RelevanceScore: 0.8, Song: &model.Song{ID: 1}},
	}
	svc := NewRecommendationService(moodSongs, newFakeFavoriteRepo(), &fakeEmotionRepo{})

	recs, err := svc.ForMood(context.Background(), nil, "calm", 0)
	if err != nil {
		t.Fatalf("ForMood returned error: %v", err)
	}
	if len(recs) != 1 || recs[0].IsFavorite {
		t.Errorf("anonymous requests should never be flagged: %+v", recs)
	}
	if moodSongs.lastLimit != DefaultPageSize {
		t.Errorf("expected default limit %d, got %d", DefaultPageSize, moodSongs.lastLimit)
	}
}

func TestForMoodRequiresMood(t *testing.T) {
	svc := NewRecommendationService(newFakeMoodSongRepo(), newFakeFavoriteRepo(), &fakeEmotionRepo{})

	if _, err := svc.ForMood(context.Background(), nil, "  ", 5); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank mood: expected ErrMissingField, got %v", err)
	}
}

func TestForUserSeedsFromLatestEmotion(t *testing.T) {
	moodSongs := newFakeMoodSongRepo()
	moodSongs.listed = []*model.MoodSong{
		{ID: 1, Mood: "sad", SongID: 1, RelevanceScore: 0.95, Song: &model.Song{ID: 1}},
	}
	emotions := &fakeEmotionRepo{records: []*model.EmotionRecord{
		{ID: 1, UserID: 10, Emotion: "happy"},
		{ID: 2, UserID: 10, Emotion: "sad"},
	}}
	svc := NewRecommendationService(moodSongs, newFakeFavoriteRepo(), emotions)

	mood, recs, err := svc.ForUser(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("ForUser returned error: %v", err)
	}
	if mood != "sad" {
		t.Errorf("expected mood from latest record, got %q", mood)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 recommendation, got %d", len(recs))
	}
}

func TestForUserWithoutHistory(t *testing.T) {
	svc := NewRecommendationService(newFakeMoodSongRepo(), newFakeFavoriteRepo(), &fakeEmotionRepo{})

	mood, recs, err := svc.ForUser(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("ForUser returned error: %v", err)
	}
	if mood != "" || len(recs) != 0 {
		t.Errorf("expected empty result without history, got mood %q and %d recs", mood, len(recs))
	}
}
