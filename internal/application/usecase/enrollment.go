package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/progress"
)

type EnrollmentUseCase struct {
	enrollments EnrollmentRepository
	courses     CourseRepository
	emotions    EmotionRepository
}

func NewEnrollmentUseCase(er EnrollmentRepository, cr CourseRepository, emr EmotionRepository) *EnrollmentUseCase {
	return &EnrollmentUseCase{
		enrollments: er,
		courses:     cr,
		emotions:    emr,
	}
}

// Enroll creates the caller's enrollment in courseID.
//
// The existence check is a fast path; the unique (student, course) index is what
// actually rejects a duplicate that races past it. The active-course cap is
// best-effort under concurrency. Price is not enforced.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, p *domain.Principal, courseID uuid.UUID) (*domain.Enrollment, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	exists, err := uc.enrollments.Exists(ctx, p.ID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyEnrolled
	}

	active, err := uc.enrollments.CountActive(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if active >= domain.MaxActiveEnrollments {
		return nil, domain.ErrTooManyActiveEnrollments
	}

	enrollment := domain.NewEnrollment(p.ID, courseID)
	if err := uc.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (uc *EnrollmentUseCase) MyEnrollments(ctx context.Context, p *domain.Principal) ([]domain.Enrollment, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return uc.enrollments.ListByStudent(ctx, p.ID)
}

// MarkLessonComplete records lessonID as done and recomputes progress. Repeating the
// call with the same lesson returns the enrollment unchanged. lessonID is not checked
// against the course's lessons.
func (uc *EnrollmentUseCase) MarkLessonComplete(ctx context.Context, p *domain.Principal, enrollmentID uuid.UUID, lessonID string) (*domain.Enrollment, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if lessonID == "" {
		return nil, domain.Invalid("lessonId is required")
	}

	enrollment, err := uc.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := access.CanAccessEnrollment(p, enrollment); err != nil {
		return nil, err
	}
	if enrollment.HasCompleted(lessonID) {
		return enrollment, nil
	}

	var lessons []domain.Lesson
	course, err := uc.courses.GetByID(ctx, enrollment.CourseID)
	switch {
	case err == nil:
		lessons = course.Lessons
	case isNotFound(err):
		// course is gone; keep the completion and leave progress as it was
		log.Printf("enrollment %s references missing course %s", enrollment.ID, enrollment.CourseID)
	default:
		return nil, err
	}

	return uc.enrollments.Modify(ctx, enrollmentID, func(e *domain.Enrollment) error {
		// re-check under the lock, a retry may have landed in between
		if e.HasCompleted(lessonID) {
			return nil
		}
		e.CompletedLessons = append(e.CompletedLessons, lessonID)
		progress.Apply(e, lessons)
		return nil
	})
}

type EmotionInput struct {
	CourseID string `validate:"required,uuid"`
	LessonID string
	Emotion  string `validate:"required,oneof=happy neutral confused bored sleepy"`
	Note     string `validate:"max=1000"`
}

func (uc *EnrollmentUseCase) LogEmotion(ctx context.Context, p *domain.Principal, in EmotionInput) (*domain.EmotionLog, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	entry := &domain.EmotionLog{
		ID:        uuid.New(),
		StudentID: p.ID,
		CourseID:  uuid.MustParse(in.CourseID),
		LessonID:  in.LessonID,
		Emotion:   domain.Emotion(in.Emotion),
		Note:      in.Note,
	}
	if err := uc.emotions.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
