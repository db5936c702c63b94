package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func listInstructor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func detailInstructor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "bio", "avatar")
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	// lessons, quizzes and assignments are inserted through the associations
	err := r.db.WithContext(ctx).Omit("Instructor").Create(course).Error
	return pkgerrors.Wrap(err, "create course")
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Instructor", detailInstructor).
		Preload("Lessons", byPosition).
		Preload("Quizzes", byPosition).
		Preload("Assignments", byPosition).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, pkgerrors.Wrap(err, "get course")
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filter.InstructorID)
	}
	if filter.Keyword != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Keyword+"%")
	}

	var courses []domain.Course
	err := query.
		Preload("Instructor", listInstructor).
		Preload("Lessons", byPosition).
		Order("created_at desc").Find(&courses).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list courses")
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course, replaceLessons bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(course).Select(
			"title", "description", "language", "category", "price", "thumbnail", "updated_at",
		).Updates(course).Error
		if err != nil {
			return pkgerrors.Wrap(err, "update course")
		}
		if !replaceLessons {
			return nil
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&domain.Lesson{}).Error; err != nil {
			return pkgerrors.Wrap(err, "drop lessons")
		}
		if len(course.Lessons) == 0 {
			return nil
		}
		return pkgerrors.Wrap(tx.Create(&course.Lessons).Error, "insert lessons")
	})
}

func (r *CourseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CourseStatus) (*domain.Course, error) {
	res := r.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(res.Error, "update course status")
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCourseNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *CourseRepository) IDsByInstructor(ctx context.Context, instructorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("instructor_id = ?", instructorID).
		Pluck("id", &ids).Error
	return ids, pkgerrors.Wrap(err, "course ids by instructor")
}

func (r *CourseRepository) Count(ctx context.Context, status domain.CourseStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, pkgerrors.Wrap(err, "count courses")
}
