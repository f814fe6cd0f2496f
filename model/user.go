package model

import "time"

// User represents a registered account.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	AvatarURL    string `json:"avatarUrl,omitempty" gorm:"size:512"`
	Bio          string `json:"bio,omitempty" gorm:"size:1024"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (User) TableName() string {
	return "users"
}
