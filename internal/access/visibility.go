package access

import (
	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

// StatusAll asks for courses in every status. Only instructors and admins get it.
const StatusAll = "all"

// CourseQuery is the catalog filter as the caller asked for it.
type CourseQuery struct {
	Keyword    string
	Language   string
	Instructor string
	Status     string
}

// VisibleCourseFilter composes the caller's query with the visibility policy.
// Anonymous callers and students only ever see approved courses. Instructors and admins
// may ask for "all" or for a specific status, and an instructor filtering by their own
// id sees every status of their own courses. This is filter composition, not row-level
// security: course detail by id is not gated.
func VisibleCourseFilter(p *domain.Principal, q CourseQuery) (domain.CourseFilter, error) {
	f := domain.CourseFilter{
		Keyword:  q.Keyword,
		Language: q.Language,
		Status:   domain.CourseStatusApproved,
	}

	if q.Instructor != "" {
		id, err := uuid.Parse(q.Instructor)
		if err != nil {
			return f, domain.Invalid("invalid instructor id")
		}
		f.InstructorID = &id
	}

	if p.Is(domain.RoleAdmin) || p.Is(domain.RoleInstructor) {
		switch {
		case q.Status == StatusAll:
			f.Status = ""
		case q.Status != "":
			f.Status = domain.CourseStatus(q.Status)
		case f.InstructorID != nil && *f.InstructorID == p.ID:
			f.Status = ""
		}
	}
	return f, nil
}
