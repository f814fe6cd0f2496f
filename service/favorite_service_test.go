package service

import (
	"context"
	"errors"
	"testing"

	"MoodSync/model"
	"MoodSync/repository"
)

type fakeFavoriteRepo struct {
	byKey     map[[2]int64]*model.Favorite
	nextID    int64
	createErr error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{byKey: map[[2]int64]*model.Favorite{}, nextID: 1}
}

func (f *fakeFavoriteRepo) Create(ctx context.Context, favorite *model.Favorite) error {
	if f.createErr != nil {
		return f.createErr
	}
	favorite.ID = f.nextID
	f.nextID++
	f.byKey[[2]int64{favorite.UserID, favorite.SongID}] = favorite
	return nil
}

func (f *fakeFavoriteRepo) GetByUserAndSong(ctx context.Context, userID, songID int64) (*model.Favorite, error) {
	return f.byKey[[2]int64{userID, songID}], nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	_, ok := f.byKey[[2]int64{userID, songID}]
	return ok, nil
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Favorite, error) {
	var out []*model.Favorite
	for key, fav := range f.byKey {
		if key[0] == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for key := range f.byKey {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFavoriteRepo) DeleteByUserAndSong(ctx context.Context, userID, songID int64) (int64, error) {
	key := [2]int64{userID, songID}
	if _, ok := f.byKey[key]; !ok {
		return 0, nil
	}
	delete(f.byKey, key)
	return 1, nil
}

func TestAddFavorite(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	svc := NewFavoriteService(favorites, newFakeSongRepo(1))
	ctx := context.Background()

	item, err := svc.Add(ctx, 10, 1, "workout")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if item.UserID != 10 || item.SongID != 1 || item.Category != "workout" {
		t.Errorf("unexpected favorite: %+v", item.Favorite)
	}

	if _, err := svc.Add(ctx, 10, 1, ""); !errors.Is(err, ErrFavoriteExists) {
		t.Errorf("duplicate: expected ErrFavoriteExists, got %v", err)
	}
	if _, err := svc.Add(ctx, 10, 99, ""); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("missing song: expected ErrSongNotFound, got %v", err)
	}
}

func TestAddFavoriteRaceMapsDuplicateToConflict(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	favorites.createErr = repository.ErrDuplicateEntry
	svc := NewFavoriteService(favorites, newFakeSongRepo(1))

	if _, err := svc.Add(context.Background(), 10, 1, ""); !errors.Is(err, ErrFavoriteExists) {
		t.Errorf("insert duplicate: expected ErrFavoriteExists, got %v", err)
	}
}

func TestFavoriteAliasesMirrorSong(t *testing.T) {
	favorite := &model.Favorite{
		ID:     1,
		UserID: 10,
		SongID: 1,
		Song: &model.Song{
			ID:         1,
			Title:      "Song",
			Artist:     "Artist",
			ImageURL:   "/static/covers/song_1.jpg",
			PreviewURL: "https://cdn.example.com/preview.mp3",
		},
	}

	item := decorateFavorite(favorite)
	if item.AlbumArt != favorite.Song.ImageURL || item.AlbumArtSnake != favorite.Song.ImageURL {
		t.Errorf("album art aliases do not mirror the song image: %+v", item)
	}
	if item.PreviewURLSnake != favorite.Song.PreviewURL {
		t.Errorf("preview alias does not mirror the song preview: %+v", item)
	}

	bare := decorateFavorite(&model.Favorite{ID: 2, UserID: 10, SongID: 2})
	if bare.AlbumArt != "" || bare.AlbumArtSnake != "" || bare.PreviewURLSnake != "" {
		t.Errorf("aliases should be empty without an embedded song: %+v", bare)
	}
}

func TestRemoveFavorite(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	svc := NewFavoriteService(favorites, newFakeSongRepo(1))
	ctx := context.Background()

	if _, err := svc.Add(ctx, 10, 1, ""); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := svc.Remove(ctx, 10, 1); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := svc.Remove(ctx, 10, 1); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("second remove: expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestIsFavorite(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	svc := NewFavoriteService(favorites, newFakeSongRepo(1))
	ctx := context.Background()

	ok, err := svc.IsFavorite(ctx, 10, 1)
	if err != nil {
		t.Fatalf("IsFavorite returned error: %v", err)
	}
	if ok {
		t.Error("expected false before adding")
	}

	if _, err := svc.Add(ctx, 10, 1, ""); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	ok, err = svc.IsFavorite(ctx, 10, 1)
	if err != nil {
		t.Fatalf("IsFavorite returned error: %v", err)
	}
	if !ok {
		t.Error("expected true after adding")
	}

	// Unknown songs and users answer false, never an error.
	ok, err = svc.IsFavorite(ctx, 777, 888)
	if err != nil {
		t.Fatalf("IsFavorite returned error: %v", err)
	}
	if ok {
		t.Error("expected false for unknown pair")
	}
}
