package service

import (
	"context"
	"fmt"
	"strings"

	"MoodSync/model"
	"MoodSync/repository"
)

// FeedbackPage is the pagination envelope for feedback listings.
type FeedbackPage struct {
	Data     []*model.Feedback `json:"data"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// CreateFeedbackInput carries one feedback entry.
type CreateFeedbackInput struct {
	SongID  *int64 `json:"songId"`
	Mood    string `json:"mood"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackService manages recommendation feedback.
type FeedbackService struct {
	feedback repository.FeedbackRepository
	songs    repository.SongRepository
}

// NewFeedbackService creates a feedback service.
func NewFeedbackService(feedback repository.FeedbackRepository, songs repository.SongRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, songs: songs}
}

// Create stores a feedback entry. The rating is 1..5; when a song is
// referenced it must exist.
func (s *FeedbackService) Create(ctx context.Context, userID int64, in CreateFeedbackInput) (*model.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if in.SongID != nil {
		exists, err := s.songs.ExistsByID(ctx, *in.SongID)
		if err != nil {
			return nil, fmt.Errorf("failed to check song %d: %w", *in.SongID, err)
		}
		if !exists {
			return nil, ErrSongNotFound
		}
	}

	entry := &model.Feedback{
		UserID:  userID,
		SongID:  in.SongID,
		Mood:    strings.TrimSpace(strings.ToLower(in.Mood)),
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	if err := s.feedback.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return entry, nil
}

// ListByUser returns one page of the user's feedback, newest first.
func (s *FeedbackService) ListByUser(ctx context.Context, userID int64, page, limit int) (*FeedbackPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	entries, err := s.feedback.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	total, err := s.feedback.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	return &FeedbackPage{Data: entries, Total: total, Page: page, PageSize: limit}, nil
}

// Delete removes a feedback entry. Entries belonging to another user look
// like missing entries to the caller.
func (s *FeedbackService) Delete(ctx context.Context, userID, id int64) error {
	entry, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get feedback %d: %w", id, err)
	}
	if entry == nil || entry.UserID != userID {
		return ErrFeedbackNotFound
	}
	if err := s.feedback.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, err)
	}
	return nil
}
