package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// PlaylistRepository defines the interface for playlist data operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error)
	Updates(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	AddSong(ctx context.Context, entry *model.PlaylistSong) error
	RemoveSong(ctx context.Context, playlistID, songID int64) (int64, error)
	MaxPosition(ctx context.Context, playlistID int64) (int, error)
}

// gormPlaylistRepository implements PlaylistRepository with GORM.
type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a GORM playlist repository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return translateError(r.db.WithContext(ctx).Create(playlist).Error)
}

// GetByID returns the playlist with its entries ordered by position, each
// entry carrying its song.
func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).
		Preload("Songs", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_songs.position ASC")
		}).
		Preload("Songs.Song").
		Preload("Songs.Song.Genre").
		First(&playlist, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&playlists).Error
	return playlists, err
}

func (r *gormPlaylistRepository) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).Model(&model.Playlist{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Playlist{}, id).Error
}

func (r *gormPlaylistRepository) AddSong(ctx context.Context, entry *model.PlaylistSong) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *gormPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Delete(&model.PlaylistSong{})
	return res.RowsAffected, res.Error
}

// MaxPosition returns the highest position in the playlist, or zero when it
// is empty.
func (r *gormPlaylistRepository) MaxPosition(ctx context.Context, playlistID int64) (int, error) {
	var position int
	err := r.db.WithContext(ctx).Model(&model.PlaylistSong{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&position).Error
	return position, err
}
