package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// MoodSongRepository defines the interface for mood mapping data operations.
type MoodSongRepository interface {
	Create(ctx context.Context, moodSong *model.MoodSong) error
	GetByID(ctx context.Context, id int64) (*model.MoodSong, error)
	Exists(ctx context.Context, mood string, songID int64) (bool, error)
	ListByMood(ctx context.Context, mood string, offset, limit int) ([]*model.MoodSong, error)
	CountByMood(ctx context.Context, mood string) (int64, error)
	ListMoods(ctx context.Context) ([]model.MoodCount, error)
	ListBySong(ctx context.Context, songID int64) ([]*model.MoodSong, error)
	Updates(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// gormMoodSongRepository implements MoodSongRepository with GORM.
type gormMoodSongRepository struct {
	db *gorm.DB
}

// NewGormMoodSongRepository creates a GORM mood mapping repository.
func NewGormMoodSongRepository(db *gorm.DB) MoodSongRepository {
	return &gormMoodSongRepository{db: db}
}

func (r *gormMoodSongRepository) Create(ctx context.Context, moodSong *model.MoodSong) error {
	return translateError(r.db.WithContext(ctx).Create(moodSong).Error)
}

func (r *gormMoodSongRepository) GetByID(ctx context.Context, id int64) (*model.MoodSong, error) {
	var moodSong model.MoodSong
	err := r.db.WithContext(ctx).
		Preload("Song").
		Preload("Song.Genre").
		First(&moodSong, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &moodSong, nil
}

func (r *gormMoodSongRepository) Exists(ctx context.Context, mood string, songID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MoodSong{}).
		Where("mood = ? AND song_id = ?", mood, songID).
		Count(&count).Error
	return count > 0, err
}

// ListByMood returns links for the exact mood tag ranked by relevance.
// Equal scores keep insertion order (ascending id) so pagination stays
// deterministic across pages.
func (r *gormMoodSongRepository) ListByMood(ctx context.Context, mood string, offset, limit int) ([]*model.MoodSong, error) {
	var moodSongs []*model.MoodSong
	err := r.db.WithContext(ctx).
		Preload("Song").
		Preload("Song.Genre").
		Where("mood = ?", mood).
		Order("relevance_score DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&moodSongs).Error
	return moodSongs, err
}

func (r *gormMoodSongRepository) CountByMood(ctx context.Context, mood string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MoodSong{}).
		Where("mood = ?", mood).
		Count(&count).Error
	return count, err
}

// ListMoods aggregates the distinct mood tags with their link counts, most
// populated first. Moods with no remaining links are simply absent.
func (r *gormMoodSongRepository) ListMoods(ctx context.Context) ([]model.MoodCount, error) {
	var counts []model.MoodCount
	err := r.db.WithContext(ctx).Model(&model.MoodSong{}).
		Select("mood, COUNT(*) AS count").
		Group("mood").
		Order("count DESC, mood ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *gormMoodSongRepository) ListBySong(ctx context.Context, songID int64) ([]*model.MoodSong, error) {
	var moodSongs []*model.MoodSong
	err := r.db.WithContext(ctx).
		Where("song_id = ?", songID).
		Find(&moodSongs).Error
	return moodSongs, err
}

func (r *gormMoodSongRepository) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).Model(&model.MoodSong{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *gormMoodSongRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.MoodSong{}, id).Error
}
