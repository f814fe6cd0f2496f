package model

import "time"

// MoodSong links a song to a free-text mood tag with a relevance score in
// [0, 1]. At most one link may exist per (mood, song) pair; the composite
// unique index is the authoritative guarantee under concurrent writes.
type MoodSong struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Mood           string  `json:"mood" gorm:"size:64;not null;uniqueIndex:uq_mood_song,priority:1;index"`
	SongID         int64   `json:"songId" gorm:"not null;uniqueIndex:uq_mood_song,priority:2"`
	Song           *Song   `json:"song,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	RelevanceScore float64 `json:"relevanceScore" gorm:"not null;default:0.5"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (MoodSong) TableName() string {
	return "mood_songs"
}

// MoodCount is one row of the mood aggregation: a mood tag and the number of
// songs linked to it. Moods without links never appear.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}
