package model

import "time"

// Playlist is a user-owned ordered collection of songs.
type Playlist struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64  `json:"userId" gorm:"not null;index"`
	User        *User  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description,omitempty" gorm:"size:1024"`

	Songs []PlaylistSong `json:"songs,omitempty" gorm:"foreignKey:PlaylistID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistSong is a playlist membership entry. A song appears at most once
// per playlist.
type PlaylistSong struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"not null;uniqueIndex:uq_playlist_song,priority:1"`
	Playlist   *Playlist `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SongID     int64     `json:"songId" gorm:"not null;uniqueIndex:uq_playlist_song,priority:2"`
	Song       *Song     `json:"song,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Position   int       `json:"position"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (PlaylistSong) TableName() string {
	return "playlist_songs"
}
