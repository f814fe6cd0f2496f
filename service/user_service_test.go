package service

import (
	"context"
	"errors"
	"testing"

	"MoodSync/model"
	"MoodSync/repository"
)

type fakeUserRepo struct {
	byID      map[int64]*model.User
	nextID    int64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeUserRepo) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	u := f.byID[id]
	if username, ok := fields["username"].(string); ok {
		u.Username = username
	}
	if avatar, ok := fields["avatar_url"].(string); ok {
		u.AvatarURL = avatar
	}
	if bio, ok := fields["bio"].(string); ok {
		u.Bio = bio
	}
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", " Alice@Example.COM ", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret" {
		t.Error("password must be stored hashed")
	}

	if _, err := svc.Register(ctx, "alice2", "alice@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, "", "bob@example.com", "pw"); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank username: expected ErrMissingField, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "bob@example.com", ""); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank password: expected ErrMissingField, got %v", err)
	}
}

func TestRegisterRaceMapsDuplicateToConflict(t *testing.T) {
	users := newFakeUserRepo()
	users.createErr = repository.ErrDuplicateEntry
	svc := NewUserService(users)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("insert duplicate: expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice@example.com", "secret"); err != nil {
		t.Errorf("login by email failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "secret"); err != nil {
		t.Errorf("login by username failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	bio := "music lover"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Bio != bio || updated.Username != "alice" {
		t.Errorf("unexpected profile after update: %+v", updated)
	}

	blank := "  "
	if _, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Username: &blank}); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank username: expected ErrMissingField, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, 999, UpdateProfileInput{Bio: &bio}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user: expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsersDefaultPageSize(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	page, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.PageSize != DefaultUserPageSize {
		t.Errorf("expected default user page size %d, got %d", DefaultUserPageSize, page.PageSize)
	}
}
