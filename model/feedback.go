package model

import "time"

// Feedback is a user's rating of a recommendation, optionally tied to a song
// and the mood it was recommended for. Deleting the song keeps the feedback
// with a detached song reference.
type Feedback struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID  int64  `json:"userId" gorm:"not null;index"`
	User    *User  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SongID  *int64 `json:"songId,omitempty"`
	Song    *Song  `json:"song,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Mood    string `json:"mood,omitempty" gorm:"size:64"`
	Rating  int    `json:"rating" gorm:"not null"` // 1..5
	Comment string `json:"comment,omitempty" gorm:"size:1024"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (Feedback) TableName() string {
	return "feedback"
}
