package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// EmotionRepository defines the interface for emotion history data operations.
type EmotionRepository interface {
	Create(ctx context.Context, record *model.EmotionRecord) error
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.EmotionRecord, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	LatestByUser(ctx context.Context, userID int64) (*model.EmotionRecord, error)
}

// gormEmotionRepository implements EmotionRepository with GORM.
type gormEmotionRepository struct {
	db *gorm.DB
}

// NewGormEmotionRepository creates a GORM emotion history repository.
func NewGormEmotionRepository(db *gorm.DB) EmotionRepository {
	return &gormEmotionRepository{db: db}
}

func (r *gormEmotionRepository) Create(ctx context.Context, record *model.EmotionRecord) error {
	return translateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *gormEmotionRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.EmotionRecord, error) {
	var records []*model.EmotionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("detected_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *gormEmotionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EmotionRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// LatestByUser returns the most recent record or nil when the user has no
// emotion history.
func (r *gormEmotionRepository) LatestByUser(ctx context.Context, userID int64) (*model.EmotionRecord, error) {
	var record model.EmotionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("detected_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
