package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MoodSync/core/auth"
	"MoodSync/model"
	"MoodSync/repository"
)

// UserPage is the pagination envelope for user listings.
type UserPage struct {
	Data     []*model.User `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// UpdateProfileInput carries a partial profile update; nil fields are
// untouched.
type UpdateProfileInput struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

// UserService manages accounts and profiles.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a user service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates an account with a bcrypt-hashed password. Emails are
// unique; the unique index backs the check under concurrent registrations.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return nil, fmt.Errorf("%w: username", ErrMissingField)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the account. The login
// may be a username or an email address.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.users.GetByUsername(ctx, login)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get fetches one user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile overwrites only the fields present in the input.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (*model.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if in.Username != nil {
		if strings.TrimSpace(*in.Username) == "" {
			return nil, fmt.Errorf("%w: username", ErrMissingField)
		}
		fields["username"] = strings.TrimSpace(*in.Username)
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}

	if len(fields) > 0 {
		if err := s.users.Updates(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update user %d: %w", id, err)
		}
	}
	return s.users.GetByID(ctx, id)
}

// List returns one page of users; user pages default to a smaller size than
// the rest of the API.
func (s *UserService) List(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultUserPageSize)

	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &UserPage{Data: users, Total: total, Page: page, PageSize: limit}, nil
}
