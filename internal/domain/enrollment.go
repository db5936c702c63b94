package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxActiveEnrollments caps how many unfinished courses a student may hold at once.
const MaxActiveEnrollments = 3

type Enrollment struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course;index" json:"student"`
	CourseID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course;index" json:"courseId"`
	CompletedLessons []string  `gorm:"serializer:json" json:"completedLessons"`
	Progress         int       `gorm:"default:0;index" json:"progress"`
	IsCompleted      bool      `gorm:"default:false;index" json:"isCompleted"`

	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewEnrollment(studentID, courseID uuid.UUID) *Enrollment {
	return &Enrollment{
		ID:               uuid.New(),
		StudentID:        studentID,
		CourseID:         courseID,
		CompletedLessons: []string{},
	}
}

func (e *Enrollment) HasCompleted(lessonID string) bool {
	return slices.Contains(e.CompletedLessons, lessonID)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
