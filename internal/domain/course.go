package domain

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusRejected CourseStatus = "rejected"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusPending, CourseStatusApproved, CourseStatusRejected:
		return true
	}
	return false
}

const (
	DefaultLanguage = "Urdu"
	DefaultChapter  = "General"
)

type Course struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"_id"`
	InstructorID uuid.UUID    `gorm:"type:uuid;index;not null" json:"instructorId"`
	Title        string       `gorm:"index;not null" json:"title"`
	Description  string       `gorm:"not null" json:"description"`
	Language     string       `gorm:"index;default:'Urdu'" json:"language"`
	Category     string       `gorm:"index" json:"category"`
	Price        float64      `gorm:"default:0" json:"price"`
	Thumbnail    string       `json:"thumbnail"`
	Status       CourseStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	Rating       float64      `gorm:"default:0" json:"rating"`
	NumReviews   int          `gorm:"default:0" json:"numReviews"`

	Instructor *InstructorProfile `gorm:"foreignKey:InstructorID;constraint:-" json:"instructor,omitempty"`

	Lessons     []Lesson     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons"`
	Quizzes     []Quiz       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"quizzes"`
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"assignments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InstructorProfile is the public part of the owning user shown with a course. The
// catalog list fills Name only; course detail adds email, bio and avatar.
type InstructorProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email,omitempty"`
	Bio    string    `json:"bio,omitempty"`
	Avatar string    `json:"avatar,omitempty"`
}

func (InstructorProfile) TableName() string { return "users" }

// ListProfile is the subset shown in catalog listings.
func (u *User) ListProfile() *InstructorProfile {
	return &InstructorProfile{ID: u.ID, Name: u.Name}
}

// DetailProfile is the subset shown on a single course.
func (u *User) DetailProfile() *InstructorProfile {
	return &InstructorProfile{ID: u.ID, Name: u.Name, Email: u.Email, Bio: u.Bio, Avatar: u.Avatar}
}

// Lesson ids are stable once created; enrollments reference them by id.
type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Position int       `json:"position"`
	Title    string    `gorm:"not null" json:"title"`
	VideoURL string    `gorm:"not null" json:"videoUrl"`
	AudioURL string    `json:"audioUrl,omitempty"`
	PDFURL   string    `json:"pdfUrl,omitempty"`
	NotesURL string    `json:"notesUrl,omitempty"`
	Duration int       `json:"duration"`
	IsFree   bool      `gorm:"default:false" json:"isFree"`
	Chapter  string    `gorm:"default:'General'" json:"chapter"`
}

type Quiz struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID  uuid.UUID      `gorm:"type:uuid;index" json:"-"`
	Position  int            `json:"position"`
	Title     string         `json:"title"`
	FileURL   string         `json:"fileUrl,omitempty"`
	Questions []QuizQuestion `gorm:"serializer:json" json:"questions"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Assignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	Position    int        `json:"position"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	FileURL     string     `json:"fileUrl,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// ClearContentIDs drops ids on lessons, quizzes and assignments so PrepareContent
// issues new ones.
func (c *Course) ClearContentIDs() {
	for i := range c.Lessons {
		c.Lessons[i].ID = uuid.Nil
	}
	for i := range c.Quizzes {
		c.Quizzes[i].ID = uuid.Nil
	}
	for i := range c.Assignments {
		c.Assignments[i].ID = uuid.Nil
	}
}

// PrepareContent assigns ids, positions and defaults to the course's embedded content.
// Ids already set are kept so that lesson identity survives edits.
func (c *Course) PrepareContent() {
	for i := range c.Lessons {
		l := &c.Lessons[i]
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		l.CourseID = c.ID
		l.Position = i + 1
		if l.Chapter == "" {
			l.Chapter = DefaultChapter
		}
	}
	for i := range c.Quizzes {
		q := &c.Quizzes[i]
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		q.CourseID = c.ID
		q.Position = i + 1
	}
	for i := range c.Assignments {
		a := &c.Assignments[i]
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.CourseID = c.ID
		a.Position = i + 1
	}
}

// CourseFilter is a resolved catalog query. An empty Status means any status.
type CourseFilter struct {
	Keyword      string
	Language     string
	InstructorID *uuid.UUID
	Status       CourseStatus
}

// Matches applies f to c the same way the SQL query does.
func (f CourseFilter) Matches(c *Course) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Language != "" && c.Language != f.Language {
		return false
	}
	if f.InstructorID != nil && c.InstructorID != *f.InstructorID {
		return false
	}
	if f.Keyword != "" && !containsFold(c.Title, f.Keyword) {
		return false
	}
	return true
}
