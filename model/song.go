package model

import "time"

// Song represents a song in the catalog. Duplicate (title, artist) pairs are
// permitted; catalog entries may mirror the same recording from different
// providers.
type Song struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string  `json:"title" gorm:"size:255;not null"`
	Artist     string  `json:"artist" gorm:"size:255;not null"`
	Album      string  `json:"album,omitempty" gorm:"size:255"`
	Duration   float64 `json:"duration"` // seconds
	GenreID    *int64  `json:"genreId,omitempty" gorm:"index"`
	Genre      *Genre  `json:"genre,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	SpotifyID  string  `json:"spotifyId,omitempty" gorm:"size:100"`
	ImageURL   string  `json:"imageUrl,omitempty" gorm:"size:512"`
	PreviewURL string  `json:"previewUrl,omitempty" gorm:"size:512"`

	PlaylistSongs []PlaylistSong `json:"playlistSongs,omitempty" gorm:"foreignKey:SongID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Song) TableName() string {
	return "songs"
}
