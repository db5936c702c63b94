package domain

import (
	"time"

	"github.com/google/uuid"
)

type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionNeutral  Emotion = "neutral"
	EmotionConfused Emotion = "confused"
	EmotionBored    Emotion = "bored"
	EmotionSleepy   Emotion = "sleepy"
)

func (e Emotion) Valid() bool {
	switch e {
	case EmotionHappy, EmotionNeutral, EmotionConfused, EmotionBored, EmotionSleepy:
		return true
	}
	return false
}

// EmotionLog is write-only telemetry.
type EmotionLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	StudentID uuid.UUID `gorm:"type:uuid;index;not null" json:"student"`
	CourseID  uuid.UUID `gorm:"type:uuid;index;not null" json:"course"`
	LessonID  string    `json:"lessonId,omitempty"`
	Emotion   Emotion   `gorm:"type:varchar(20);not null" json:"emotion"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
