// Package access holds the authorization predicates evaluated before every mutating
// operation on courses, enrollments and payouts. Each check returns nil when allowed and
// a domain error of kind Forbidden (or Unauthorized for anonymous callers) otherwise.
package access

import (
	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

func RequireAuthenticated(p *domain.Principal) error {
	if p == nil {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func RequireAdmin(p *domain.Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RoleAdmin {
		return domain.Forbidden("admin access required")
	}
	return nil
}

// CanCreateCourse is the single gate for publishing content: only verified
// instructors pass.
func CanCreateCourse(p *domain.Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RoleInstructor {
		return domain.Forbidden("only instructors can create courses")
	}
	if !p.IsVerified {
		return domain.Forbidden("instructor identity is not verified")
	}
	return nil
}

func CanModifyCourse(p *domain.Principal, c *domain.Course) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.ID == c.InstructorID || p.Role == domain.RoleAdmin {
		return nil
	}
	return domain.Forbidden("not authorized to update this course")
}

func CanSetCourseStatus(p *domain.Principal) error {
	return RequireAdmin(p)
}

// CanRequestPayout does not look at verification.
func CanRequestPayout(p *domain.Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RoleInstructor {
		return domain.Forbidden("only instructors can request payouts")
	}
	return nil
}

func CanResolvePayout(p *domain.Principal) error {
	return RequireAdmin(p)
}

func CanViewInstructorStats(p *domain.Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RoleInstructor && p.Role != domain.RoleAdmin {
		return domain.Forbidden("instructor access required")
	}
	return nil
}

// CanAccessEnrollment allows only the enrolled student.
func CanAccessEnrollment(p *domain.Principal, e *domain.Enrollment) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.ID != e.StudentID {
		return domain.Forbidden("not authorized")
	}
	return nil
}
