package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type AdminUseCase struct {
	users   UserRepository
	courses CourseRepository
}

func NewAdminUseCase(ur UserRepository, cr CourseRepository) *AdminUseCase {
	return &AdminUseCase{users: ur, courses: cr}
}

type SystemStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalInstructors int64   `json:"totalInstructors"`
	TotalCourses     int64   `json:"totalCourses"`
	PendingCourses   int64   `json:"pendingCourses"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// Stats reports catalog counts. Revenue is not tracked and is always 0.
func (uc *AdminUseCase) Stats(ctx context.Context, p *domain.Principal) (*SystemStats, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}

	var (
		s   SystemStats
		err error
	)
	if s.TotalUsers, err = uc.users.Count(ctx, ""); err != nil {
		return nil, err
	}
	if s.TotalInstructors, err = uc.users.Count(ctx, domain.RoleInstructor); err != nil {
		return nil, err
	}
	if s.TotalCourses, err = uc.courses.Count(ctx, ""); err != nil {
		return nil, err
	}
	if s.PendingCourses, err = uc.courses.Count(ctx, domain.CourseStatusPending); err != nil {
		return nil, err
	}
	return &s, nil
}

func (uc *AdminUseCase) Instructors(ctx context.Context, p *domain.Principal) ([]domain.User, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	return uc.users.List(ctx, domain.RoleInstructor)
}

func (uc *AdminUseCase) Users(ctx context.Context, p *domain.Principal) ([]domain.User, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	return uc.users.List(ctx, "")
}

// VerifyInstructor marks the user's identity as reviewed, which opens course creation.
func (uc *AdminUseCase) VerifyInstructor(ctx context.Context, p *domain.Principal, id uuid.UUID) (*domain.User, error) {
	return uc.setFlag(ctx, p, id, func(u *domain.User) { u.IsVerified = true })
}

// ApproveInstructor flips the account approval flag set to false at registration.
func (uc *AdminUseCase) ApproveInstructor(ctx context.Context, p *domain.Principal, id uuid.UUID) (*domain.User, error) {
	return uc.setFlag(ctx, p, id, func(u *domain.User) { u.IsApproved = true })
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, p *domain.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

func (uc *AdminUseCase) setFlag(ctx context.Context, p *domain.Principal, id uuid.UUID, set func(*domain.User)) (*domain.User, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	set(user)
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
