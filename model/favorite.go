package model

import "time"

// Favorite is a per-user song bookmark. A user can favorite a song at most
// once; favorites are removed together with the owning user or the song.
type Favorite struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   int64  `json:"userId" gorm:"not null;uniqueIndex:uq_user_song,priority:1;index"`
	User     *User  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SongID   int64  `json:"songId" gorm:"not null;uniqueIndex:uq_user_song,priority:2"`
	Song     *Song  `json:"song,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category string `json:"category,omitempty" gorm:"size:50"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (Favorite) TableName() string {
	return "favorites"
}
