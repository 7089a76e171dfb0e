package models

import "time"

// Severity bounds, inclusive.
const (
	SeverityMin = 1
	SeverityMax = 10
)

// Event is one logged occurrence of a trigger and the behavior that
// followed it. Timestamp is assigned by the server at write time (UTC);
// client-claimed times are ignored. Emotion and EmotionConfidence are
// filled in by the classifier when it answers in time, and stay nil
// otherwise.
type Event struct {
	ID                string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID            string    `gorm:"type:varchar(50);index" json:"user_id"`
	Timestamp         time.Time `gorm:"index" json:"timestamp"`
	Trigger           string    `gorm:"type:text" json:"trigger"`
	Behavior          string    `gorm:"type:text" json:"behavior"`
	Severity          int       `json:"severity"`
	Reflection        string    `gorm:"type:text" json:"reflection"`
	Emotion           *string   `gorm:"type:varchar(50)" json:"emotion,omitempty"`
	EmotionConfidence *float64  `json:"emotionConfidence,omitempty"`
}
