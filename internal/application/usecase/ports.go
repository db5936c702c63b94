package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

// Repositories return domain errors of kind NotFound / Conflict for missing rows and
// unique violations; anything else is an infrastructure failure.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List and Count take an empty role to mean every role.
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	Count(ctx context.Context, role domain.Role) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	// GetByID loads lessons, quizzes and assignments in position order.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
	// Update saves scalar fields; when replaceLessons is set the lesson rows are
	// replaced by course.Lessons.
	Update(ctx context.Context, course *domain.Course, replaceLessons bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CourseStatus) (*domain.Course, error)
	IDsByInstructor(ctx context.Context, instructorID uuid.UUID) ([]uuid.UUID, error)
	// Count takes an empty status to mean every status.
	Count(ctx context.Context, status domain.CourseStatus) (int64, error)
}

type EnrollmentRepository interface {
	// Create returns domain.ErrAlreadyEnrolled when the (student, course) pair exists.
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	CountActive(ctx context.Context, studentID uuid.UUID) (int64, error)
	// ListByStudent joins each enrollment with its course.
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Enrollment, error)
	// Modify runs fn on the locked enrollment and saves the result.
	Modify(ctx context.Context, id uuid.UUID, fn func(*domain.Enrollment) error) (*domain.Enrollment, error)
	// CountForCourses returns how many enrollments reference courseIDs and how many of
	// those have progress 100.
	CountForCourses(ctx context.Context, courseIDs []uuid.UUID) (total int64, completed int64, err error)
}

type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) error
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]domain.Payout, error)
	// ListAll joins the instructor.
	ListAll(ctx context.Context) ([]domain.Payout, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PayoutStatus) (*domain.Payout, error)
}

type EmotionRepository interface {
	Create(ctx context.Context, log *domain.EmotionLog) error
}

// CourseCache is a read-through cache for course detail. Fill only writes an absent
// entry, so a read that raced a write cannot replace what the write stored with Set.
type CourseCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Course, bool)
	Fill(ctx context.Context, course *domain.Course)
	Set(ctx context.Context, course *domain.Course)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// TokenStore keeps issued refresh tokens so they can be revoked.
type TokenStore interface {
	SaveRefresh(ctx context.Context, userID string, refreshToken string) error
	// ConsumeRefresh removes refreshToken and returns its user id in one step, so a
	// token can be redeemed once. A missing token yields domain.ErrTokenRevoked.
	ConsumeRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type noCache struct{}

func (noCache) Get(context.Context, uuid.UUID) (*domain.Course, bool) { return nil, false }
func (noCache) Fill(context.Context, *domain.Course)                  {}
func (noCache) Set(context.Context, *domain.Course)                   {}
func (noCache) Invalidate(context.Context, uuid.UUID)                 {}

// NoCache disables course caching.
var NoCache CourseCache = noCache{}
