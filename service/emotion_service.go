package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MoodSync/model"
	"MoodSync/repository"
)

// EmotionPage is the pagination envelope for emotion history listings.
type EmotionPage struct {
	Data     []*model.EmotionRecord `json:"data"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}

// RecordEmotionInput carries one detected emotion.
type RecordEmotionInput struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	SessionID  string  `json:"sessionId"`
}

// EmotionService manages per-user emotion history.
type EmotionService struct {
	emotions repository.EmotionRepository
}

// NewEmotionService creates an emotion history service.
func NewEmotionService(emotions repository.EmotionRepository) *EmotionService {
	return &EmotionService{emotions: emotions}
}

// Record stores one emotion observation for the user.
func (s *EmotionService) Record(ctx context.Context, userID int64, in RecordEmotionInput) (*model.EmotionRecord, error) {
	emotion := strings.TrimSpace(strings.ToLower(in.Emotion))
	if emotion == "" {
		return nil, fmt.Errorf("%w: emotion", ErrMissingField)
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return nil, ErrInvalidConfidence
	}

	record := &model.EmotionRecord{
		UserID:     userID,
		SessionID:  in.SessionID,
		Emotion:    emotion,
		Confidence: in.Confidence,
		Source:     in.Source,
		DetectedAt: time.Now(),
	}
	if err := s.emotions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record emotion: %w", err)
	}
	return record, nil
}

// ListByUser returns one page of the user's emotion history, newest first.
func (s *EmotionService) ListByUser(ctx context.Context, userID int64, page, limit int) (*EmotionPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	records, err := s.emotions.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotion history: %w", err)
	}
	total, err := s.emotions.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count emotion history: %w", err)
	}

	return &EmotionPage{Data: records, Total: total, Page: page, PageSize: limit}, nil
}

// Latest returns the user's most recent emotion record.
func (s *EmotionService) Latest(ctx context.Context, userID int64) (*model.EmotionRecord, error) {
	record, err := s.emotions.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest emotion: %w", err)
	}
	if record == nil {
		return nil, ErrEmotionNotFound
	}
	return record, nil
}
