package service

import (
	"context"
	"errors"
	"testing"

	"MoodSync/model"
	"MoodSync/repository"
)

type fakeGenreRepo struct {
	byID      map[int64]*model.Genre
	nextID    int64
	createErr error
}

func newFakeGenreRepo(names ...string) *fakeGenreRepo {
	f := &fakeGenreRepo{byID: map[int64]*model.Genre{}, nextID: 1}
	for _, name := range names {
		f.byID[f.nextID] = &model.Genre{ID: f.nextID, Name: name}
		f.nextID++
	}
	return f
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *model.Genre) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, g := range f.byID {
		if g.Name == genre.Name {
			return repository.ErrDuplicateEntry
		}
	}
	genre.ID = f.nextID
	f.nextID++
	f.byID[genre.ID] = genre
	return nil
}

func (f *fakeGenreRepo) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	return f.byID[id], nil
}

func (f *fakeGenreRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeGenreRepo) List(ctx context.Context) ([]*model.Genre, error) {
	var out []*model.Genre
	for _, g := range f.byID {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGenreRepo) Updates(ctx context.Context, id int64, fields map[string]interface{}) error {
	g := f.byID[id]
	if name, ok := fields["name"].(string); ok {
		for otherID, other := range f.byID {
			if otherID != id && other.Name == name {
				return repository.ErrDuplicateEntry
			}
		}
		g.Name = name
	}
	if description, ok := fields["description"].(string); ok {
		g.Description = description
	}
	return nil
}

func (f *fakeGenreRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestCreateSongValidation(t *testing.T) {
	svc := NewCatalogService(newFakeSongRepo(), newFakeGenreRepo("Pop"), nil)
	ctx := context.Background()

	if _, err := svc.CreateSong(ctx, CreateSongInput{Title: " ", Artist: "Artist"}); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank title: expected ErrMissingField, got %v", err)
	}
	if _, err := svc.CreateSong(ctx, CreateSongInput{Title: "Song", Artist: ""}); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank artist: expected ErrMissingField, got %v", err)
	}

	badGenre := int64(99)
	if _, err := svc.CreateSong(ctx, CreateSongInput{Title: "Song", Artist: "Artist", GenreID: &badGenre}); !errors.Is(err, ErrGenreNotFound) {
		t.Errorf("unknown genre: expected ErrGenreNotFound, got %v", err)
	}

	goodGenre := int64(1)
	song, err := svc.CreateSong(ctx, CreateSongInput{Title: "  Song  ", Artist: "Artist", GenreID: &goodGenre})
	if err != nil {
		t.Fatalf("CreateSong returned error: %v", err)
	}
	if song.Title != "Song" {
		t.Errorf("expected trimmed title, got %q", song.Title)
	}
}

func TestUpdateSongPartial(t *testing.T) {
	songs := newFakeSongRepo(1)
	svc := NewCatalogService(songs, newFakeGenreRepo("Pop"), nil)
	ctx := context.Background()

	updated, err := svc.UpdateSong(ctx, 1, UpdateSongInput{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdateSong returned error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected title 'Renamed', got %q", updated.Title)
	}
	if _, present := songs.lastUpdates["artist"]; present {
		t.Error("artist should not be touched by a title-only update")
	}

	if _, err := svc.UpdateSong(ctx, 1, UpdateSongInput{Title: strPtr("  ")}); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank title: expected ErrMissingField, got %v", err)
	}
	if _, err := svc.UpdateSong(ctx, 99, UpdateSongInput{Title: strPtr("Renamed")}); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("missing song: expected ErrSongNotFound, got %v", err)
	}
}

func TestListSongsPaginationDefaults(t *testing.T) {
	songs := newFakeSongRepo(1, 2, 3)
	svc := NewCatalogService(songs, newFakeGenreRepo(), nil)

	page, err := svc.ListSongs(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("ListSongs returned error: %v", err)
	}
	if page.Page != 1 || page.PageSize != DefaultPageSize {
		t.Errorf("expected page 1 size %d, got page %d size %d", DefaultPageSize, page.Page, page.PageSize)
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
}

func TestSearchSongsEchoesQuery(t *testing.T) {
	svc := NewCatalogService(newFakeSongRepo(), newFakeGenreRepo(), nil)

	page, err := svc.SearchSongs(context.Background(), "beatles", 1, 20)
	if err != nil {
		t.Fatalf("SearchSongs returned error: %v", err)
	}
	if page.Query != "beatles" {
		t.Errorf("expected echoed query, got %q", page.Query)
	}
}

func TestDeleteSong(t *testing.T) {
	songs := newFakeSongRepo(1)
	svc := NewCatalogService(songs, newFakeGenreRepo(), nil)
	ctx := context.Background()

	if err := svc.DeleteSong(ctx, 1); err != nil {
		t.Fatalf("DeleteSong returned error: %v", err)
	}
	if err := svc.DeleteSong(ctx, 1); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("second delete: expected ErrSongNotFound, got %v", err)
	}
}

func TestDeleteSongInvalidatesMoodAggregation(t *testing.T) {
	songs := newFakeSongRepo(1)
	moods := &fakeMoodCache{counts: []model.MoodCount{{Mood: "happy", Count: 1}}, warm: true}
	svc := NewCatalogService(songs, newFakeGenreRepo(), moods)
	ctx := context.Background()

	// The song's mood links cascade away with it, so the cached aggregation
	// must be dropped even though no mood-mapping operation ran.
	if err := svc.DeleteSong(ctx, 1); err != nil {
		t.Fatalf("DeleteSong returned error: %v", err)
	}
	if moods.invalidations != 1 {
		t.Errorf("expected 1 cache invalidation after song delete, got %d", moods.invalidations)
	}
	if moods.warm {
		t.Error("aggregation cache still warm after song delete")
	}

	// A failed delete must not touch the cache.
	if err := svc.DeleteSong(ctx, 1); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("second delete: expected ErrSongNotFound, got %v", err)
	}
	if moods.invalidations != 1 {
		t.Errorf("failed delete invalidated the cache: %d invalidations", moods.invalidations)
	}
}

func TestGenreLifecycle(t *testing.T) {
	svc := NewCatalogService(newFakeSongRepo(), newFakeGenreRepo(), nil)
	ctx := context.Background()

	genre, err := svc.CreateGenre(ctx, "  Jazz ", "smooth")
	if err != nil {
		t.Fatalf("CreateGenre returned error: %v", err)
	}
	if genre.Name != "Jazz" {
		t.Errorf("expected trimmed name, got %q", genre.Name)
	}

	if _, err := svc.CreateGenre(ctx, "Jazz", ""); !errors.Is(err, ErrGenreExists) {
		t.Errorf("duplicate name: expected ErrGenreExists, got %v", err)
	}
	if _, err := svc.CreateGenre(ctx, "  ", ""); !errors.Is(err, ErrMissingField) {
		t.Errorf("blank name: expected ErrMissingField, got %v", err)
	}

	updated, err := svc.UpdateGenre(ctx, genre.ID, strPtr("Bebop"), nil)
	if err != nil {
		t.Fatalf("UpdateGenre returned error: %v", err)
	}
	if updated.Name != "Bebop" || updated.Description != "smooth" {
		t.Errorf("unexpected genre after rename: %+v", updated)
	}

	if err := svc.DeleteGenre(ctx, genre.ID); err != nil {
		t.Fatalf("DeleteGenre returned error: %v", err)
	}
	if err := svc.DeleteGenre(ctx, genre.ID); !errors.Is(err, ErrGenreNotFound) {
		t.Errorf("second delete: expected ErrGenreNotFound, got %v", err)
	}
}

func TestUpdateGenreRenameConflict(t *testing.T) {
	genres := newFakeGenreRepo("Pop", "Rock")
	svc := NewCatalogService(newFakeSongRepo(), genres, nil)

	if _, err := svc.UpdateGenre(context.Background(), 2, strPtr("Pop"), nil); !errors.Is(err, ErrGenreExists) {
		t.Errorf("rename onto taken name: expected ErrGenreExists, got %v", err)
	}
}
