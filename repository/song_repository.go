package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// SongRepository defines the interface for song data operations.
type SongRepository interface {
	Create(ctx context.Context, song *model.Song) error
	GetByID(ctx context.Context, id int64) (*model.Song, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*model.Song, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*model.Song, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	ListByGenre(ctx context.Context, genreID int64, offset, limit int) ([]*model.Song, error)
	CountByGenre(ctx context.Context, genreID int64) (int64, error)
	Updates(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// gormSongRepository implements SongRepository with GORM.
type gormSongRepository struct {
	db *gorm.DB
}

// NewGormSongRepository creates a GORM song repository.
func NewGormSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

func (r *gormSongRepository) Create(ctx context.Context, song *model.Song) error {
	return translateError(r.db.WithContext(ctx).Create(song).Error)
}

// GetByID returns the song with its genre and playlist memberships, or nil
// when no row matches.
func (r *gormSongRepository) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	var song model.Song
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Preload("PlaylistSongs").
		First(&song, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &song, nil
}

func (r *gormSongRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *gormSongRepository) List(ctx context.Context, offset, limit int) ([]*model.Song, error) {
	var songs []*model.Song
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&songs).Error
	return songs, err
}

func (r *gormSongRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).Count(&count).Error
	return count, err
}

// Search matches the query as a substring of title, artist or album. The
// utf8mb4 collation makes LIKE case-insensitive; an empty query matches
// every row.
func (r *gormSongRepository) Search(ctx context.Context, query string, offset, limit int) ([]*model.Song, error) {
	var songs []*model.Song
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Where("title LIKE ? OR artist LIKE ? OR album LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&songs).Error
	return songs, err
}

func (r *gormSongRepository) CountSearch(ctx context.Context, query string) (int64, error) {
	var count int64
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).Model(&model.Song{}).
		Where("title LIKE ? OR artist LIKE ? OR album LIKE ?", pattern, pattern, pattern).
		Count(&count).Error
	return count, err
}

func (r *gormSongRepository) ListByGenre(ctx context.Context, genreID int64, offset, limit int) ([]*model.Song, error) {
	var songs []*model.Song
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Where("genre_id = ?", genreID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&songs).Error
	return songs, err
}

func (r *gormSongRepository) CountByGenre(ctx context.Context, genreID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).
		Where("genre_id = ?", genreID).
		Count(&count).Error
	return count, err
}

// Updates overwrites only the given columns.
func (r *gormSongRepository) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).Model(&model.Song{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *gormSongRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Song{}, id).Error
}
