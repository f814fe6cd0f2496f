package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite data operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	GetByUserAndSong(ctx context.Context, userID, songID int64) (*model.Favorite, error)
	Exists(ctx context.Context, userID, songID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Favorite, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUserAndSong(ctx context.Context, userID, songID int64) (int64, error)
}

// gormFavoriteRepository implements FavoriteRepository with GORM.
type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a GORM favorite repository.
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

func (r *gormFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return translateError(r.db.WithContext(ctx).Create(favorite).Error)
}

func (r *gormFavoriteRepository) GetByUserAndSong(ctx context.Context, userID, songID int64) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Song").
		Preload("Song.Genre").
		Where("user_id = ? AND song_id = ?", userID, songID).
		First(&favorite).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *gormFavoriteRepository) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's favorites newest first, each with its song
// and the song's genre.
func (r *gormFavoriteRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Song").
		Preload("Song.Genre").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error
	return favorites, err
}

func (r *gormFavoriteRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DeleteByUserAndSong removes the favorite and reports how many rows were
// affected; zero means there was nothing to remove.
func (r *gormFavoriteRepository) DeleteByUserAndSong(ctx context.Context, userID, songID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}
