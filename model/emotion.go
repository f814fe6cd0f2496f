package model

import "time"

// EmotionRecord is one detected (or manually reported) emotion for a user.
// Records belonging to the same detection session share a session ID.
type EmotionRecord struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"userId" gorm:"not null;index"`
	User       *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SessionID  string    `json:"sessionId,omitempty" gorm:"size:36;index"`
	Emotion    string    `json:"emotion" gorm:"size:64;not null"`
	Confidence float64   `json:"confidence"`                      // detector confidence in [0, 1]
	Source     string    `json:"source,omitempty" gorm:"size:32"` // webcam, manual, ...
	DetectedAt time.Time `json:"detectedAt"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (EmotionRecord) TableName() string {
	return "emotion_records"
}
