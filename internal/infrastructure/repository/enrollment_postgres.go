package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	err := r.db.WithContext(ctx).Omit("Course").Create(enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyEnrolled
		}
		return pkgerrors.Wrap(err, "create enrollment")
	}
	return nil
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, pkgerrors.Wrap(err, "get enrollment")
	}
	return &e, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, pkgerrors.Wrap(err, "check enrollment")
}

func (r *EnrollmentRepository) CountActive(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND is_completed = ?", studentID, false).
		Count(&count).Error
	return count, pkgerrors.Wrap(err, "count active enrollments")
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Enrollment, error) {
	var list []domain.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list enrollments")
	}
	return list, nil
}

func (r *EnrollmentRepository) Modify(ctx context.Context, id uuid.UUID, fn func(*domain.Enrollment) error) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEnrollmentNotFound
			}
			return pkgerrors.Wrap(err, "lock enrollment")
		}
		if err := fn(&e); err != nil {
			return err
		}
		return pkgerrors.Wrap(tx.Omit("Course").Save(&e).Error, "save enrollment")
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) CountForCourses(ctx context.Context, courseIDs []uuid.UUID) (int64, int64, error) {
	if len(courseIDs) == 0 {
		return 0, 0, nil
	}
	var row struct {
		Total     int64
		Completed int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE progress = 100) AS completed").
		Where("course_id IN ?", courseIDs).
		Scan(&row).Error
	if err != nil {
		return 0, 0, pkgerrors.Wrap(err, "count course enrollments")
	}
	return row.Total, row.Completed, nil
}
