package service

import (
	"context"
	"errors"
	"fmt"

	"MoodSync/model"
	"MoodSync/repository"
)

// FavoriteItem is a favorite as serialized at the API boundary. Older
// clients read the song image under albumArt/album_art and the preview
// under preview_url; the aliases always mirror the canonical song fields
// and are computed here, never stored.
type FavoriteItem struct {
	*model.Favorite
	AlbumArt        string `json:"albumArt,omitempty"`
	AlbumArtSnake   string `json:"album_art,omitempty"`
	PreviewURLSnake string `json:"preview_url,omitempty"`
}

// FavoritePage is the pagination envelope for favorite listings.
type FavoritePage struct {
	Data     []*FavoriteItem `json:"data"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// FavoriteService manages per-user song bookmarks.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	songs     repository.SongRepository
}

// NewFavoriteService creates a favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository, songs repository.SongRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, songs: songs}
}

func decorateFavorite(favorite *model.Favorite) *FavoriteItem {
	item := &FavoriteItem{Favorite: favorite}
	if favorite.Song != nil {
		item.AlbumArt = favorite.Song.ImageURL
		item.AlbumArtSnake = favorite.Song.ImageURL
		item.PreviewURLSnake = favorite.Song.PreviewURL
	}
	return item
}

// Add bookmarks a song for the user. The song must exist and the user must
// not have bookmarked it yet; a duplicate-entry from the insert itself is
// reported as the same Conflict the exists-check produces.
func (s *FavoriteService) Add(ctx context.Context, userID, songID int64, category string) (*FavoriteItem, error) {
	songExists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to check song %d: %w", songID, err)
	}
	if !songExists {
		return nil, ErrSongNotFound
	}

	taken, err := s.favorites.Exists(ctx, userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if taken {
		return nil, ErrFavoriteExists
	}

	favorite := &model.Favorite{UserID: userID, SongID: songID, Category: category}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	created, err := s.favorites.GetByUserAndSong(ctx, userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created favorite: %w", err)
	}
	return decorateFavorite(created), nil
}

// List returns one page of the user's favorites, newest first, each with its
// song (and the song's genre) embedded.
func (s *FavoriteService) List(ctx context.Context, userID int64, page, limit int) (*FavoritePage, error) {
	page, limit, offset := normalizePage(page, limit, DefaultPageSize)

	favorites, err := s.favorites.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	total, err := s.favorites.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	items := make([]*FavoriteItem, 0, len(favorites))
	for _, favorite := range favorites {
		items = append(items, decorateFavorite(favorite))
	}

	return &FavoritePage{Data: items, Total: total, Page: page, PageSize: limit}, nil
}

// Remove deletes the bookmark for (userID, songID).
func (s *FavoriteService) Remove(ctx context.Context, userID, songID int64) error {
	affected, err := s.favorites.DeleteByUserAndSong(ctx, userID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// IsFavorite reports whether the user has bookmarked the song. Absence is a
// negative answer, never an error; this operation checks, it does not fetch.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, songID int64) (bool, error) {
	return s.favorites.Exists(ctx, userID, songID)
}
