package usecase

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/progress"
)

type CourseUseCase struct {
	courses     CourseRepository
	enrollments EnrollmentRepository
	cache       CourseCache
}

func NewCourseUseCase(cr CourseRepository, er EnrollmentRepository, cache CourseCache) *CourseUseCase {
	if cache == nil {
		cache = NoCache
	}
	return &CourseUseCase{
		courses:     cr,
		enrollments: er,
		cache:       cache,
	}
}

func (uc *CourseUseCase) List(ctx context.Context, p *domain.Principal, q access.CourseQuery) ([]domain.Course, error) {
	filter, err := access.VisibleCourseFilter(p, q)
	if err != nil {
		return nil, err
	}
	return uc.courses.List(ctx, filter)
}

// Get resolves any course id regardless of status.
func (uc *CourseUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if c, ok := uc.cache.Get(ctx, id); ok {
		return c, nil
	}
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Fill(ctx, course)
	return course, nil
}

type CourseInput struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Language    string              `json:"language"`
	Category    string              `json:"category" validate:"required"`
	Price       float64             `json:"price" validate:"gte=0"`
	Thumbnail   string              `json:"thumbnail" validate:"required"`
	Lessons     []domain.Lesson     `json:"lessons"`
	Quizzes     []domain.Quiz       `json:"quizzes"`
	Assignments []domain.Assignment `json:"assignments"`
}

func (uc *CourseUseCase) Create(ctx context.Context, p *domain.Principal, in CourseInput) (*domain.Course, error) {
	if err := access.CanCreateCourse(p); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := validateLessons(in.Lessons); err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:           uuid.New(),
		InstructorID: p.ID,
		Title:        in.Title,
		Description:  in.Description,
		Language:     in.Language,
		Category:     in.Category,
		Price:        in.Price,
		Thumbnail:    in.Thumbnail,
		Status:       domain.CourseStatusPending,
		Lessons:      in.Lessons,
		Quizzes:      in.Quizzes,
		Assignments:  in.Assignments,
	}
	if course.Language == "" {
		course.Language = domain.DefaultLanguage
	}
	// content of a new course always gets fresh ids
	course.ClearContentIDs()
	course.PrepareContent()

	if err := uc.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// CourseUpdate carries optional fields; zero values keep the current value.
type CourseUpdate struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
	Lessons     []domain.Lesson `json:"lessons"`
}

// Update edits a course owned by the caller (or any course for admins). A non-nil
// Lessons list replaces the lessons; ids the client sends back are kept, so
// enrollments that completed them still count. A lesson id must already belong to
// this course. Ids dropped from the list stay in enrollments' completed sets.
func (uc *CourseUseCase) Update(ctx context.Context, p *domain.Principal, id uuid.UUID, in CourseUpdate) (*domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CanModifyCourse(p, course); err != nil {
		return nil, err
	}

	if in.Title != "" {
		course.Title = in.Title
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.Language != "" {
		course.Language = in.Language
	}
	if in.Category != "" {
		course.Category = in.Category
	}
	if in.Price > 0 {
		course.Price = in.Price
	}
	if in.Thumbnail != "" {
		course.Thumbnail = in.Thumbnail
	}

	replace := in.Lessons != nil
	if replace {
		if err := validateLessons(in.Lessons); err != nil {
			return nil, err
		}
		if err := ownLessons(course, in.Lessons); err != nil {
			return nil, err
		}
		course.Lessons = in.Lessons
		course.PrepareContent()
	}

	if err := uc.courses.Update(ctx, course, replace); err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, course)
	return course, nil
}

// SetStatus is admin-only; every transition between the three statuses is allowed.
func (uc *CourseUseCase) SetStatus(ctx context.Context, p *domain.Principal, id uuid.UUID, status domain.CourseStatus) (*domain.Course, error) {
	if err := access.CanSetCourseStatus(p); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalid("status must be one of pending, approved, rejected")
	}
	course, err := uc.courses.UpdateStatus(ctx, id, status)
	if err != nil {
		if isNotFound(err) {
			uc.cache.Invalidate(ctx, id)
		}
		return nil, err
	}
	uc.cache.Set(ctx, course)
	return course, nil
}

type InstructorStats struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalWatchTime int   `json:"totalWatchTime"`
	CompletionRate int   `json:"completionRate"`
}

// InstructorStats aggregates enrollments across the caller's own courses. Watch time
// is not tracked and is always 0.
func (uc *CourseUseCase) InstructorStats(ctx context.Context, p *domain.Principal) (*InstructorStats, error) {
	if err := access.CanViewInstructorStats(p); err != nil {
		return nil, err
	}
	ids, err := uc.courses.IDsByInstructor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	total, completed, err := uc.enrollments.CountForCourses(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &InstructorStats{
		TotalStudents:  total,
		TotalWatchTime: 0,
		CompletionRate: progress.CompletionRate(completed, total),
	}, nil
}

func validateLessons(lessons []domain.Lesson) error {
	for i, l := range lessons {
		if l.Title == "" || l.VideoURL == "" {
			return domain.Invalid("every lesson needs a title and a videoUrl")
		}
		for j := 0; j < i; j++ {
			if l.ID != uuid.Nil && lessons[j].ID == l.ID {
				return domain.Invalid("duplicate lesson id " + l.ID.String())
			}
		}
	}
	return nil
}

func ownLessons(course *domain.Course, lessons []domain.Lesson) error {
	for _, l := range lessons {
		if l.ID == uuid.Nil {
			continue
		}
		if !slices.ContainsFunc(course.Lessons, func(cur domain.Lesson) bool { return cur.ID == l.ID }) {
			return domain.Invalid("lesson " + l.ID.String() + " does not belong to this course")
		}
	}
	return nil
}
