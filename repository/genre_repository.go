package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre data operations.
type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	GetByID(ctx context.Context, id int64) (*model.Genre, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*model.Genre, error)
	Updates(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// gormGenreRepository implements GenreRepository with GORM.
type gormGenreRepository struct {
	db *gorm.DB
}

// NewGormGenreRepository creates a GORM genre repository.
func NewGormGenreRepository(db *gorm.DB) GenreRepository {
	return &gormGenreRepository{db: db}
}

func (r *gormGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return translateError(r.db.WithContext(ctx).Create(genre).Error)
}

func (r *gormGenreRepository) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *gormGenreRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Genre{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *gormGenreRepository) List(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *gormGenreRepository) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).Model(&model.Genre{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

// Delete removes the genre. Songs referencing it keep existing; the foreign
// key sets their genre_id to NULL.
func (r *gormGenreRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Genre{}, id).Error
}
