package repository

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	return pkgerrors.Wrap(r.db.WithContext(ctx).Omit("Instructor").Create(payout).Error, "create payout")
}

func (r *PayoutRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]domain.Payout, error) {
	var payouts []domain.Payout
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&payouts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list payouts")
	}
	return payouts, nil
}

func (r *PayoutRepository) ListAll(ctx context.Context) ([]domain.Payout, error) {
	var payouts []domain.Payout
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Order("created_at desc").
		Find(&payouts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list all payouts")
	}
	return payouts, nil
}

func (r *PayoutRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PayoutStatus) (*domain.Payout, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payout{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(res.Error, "update payout status")
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrPayoutNotFound
	}

	var payout domain.Payout
	if err := r.db.WithContext(ctx).First(&payout, "id = ?", id).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "reload payout")
	}
	return &payout, nil
}
