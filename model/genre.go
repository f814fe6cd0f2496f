package model

import "time"

// Genre classifies songs. Deleting a genre detaches its songs (genre_id set
// to NULL); it never deletes them.
type Genre struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"size:512"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Genre) TableName() string {
	return "genres"
}
