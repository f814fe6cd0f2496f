package repository

import (
	"context"

	"MoodSync/model"

	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for feedback data operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetByID(ctx context.Context, id int64) (*model.Feedback, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Feedback, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// gormFeedbackRepository implements FeedbackRepository with GORM.
type gormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a GORM feedback repository.
func NewGormFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &gormFeedbackRepository{db: db}
}

func (r *gormFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return translateError(r.db.WithContext(ctx).Create(feedback).Error)
}

func (r *gormFeedbackRepository) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).Preload("Song").First(&feedback, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *gormFeedbackRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Feedback, error) {
	var feedback []*model.Feedback
	err := r.db.WithContext(ctx).
		Preload("Song").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&feedback).Error
	return feedback, err
}

func (r *gormFeedbackRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *gormFeedbackRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, id).Error
}
