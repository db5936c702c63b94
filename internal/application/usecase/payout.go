package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type PayoutUseCase struct {
	payouts PayoutRepository
}

func NewPayoutUseCase(pr PayoutRepository) *PayoutUseCase {
	return &PayoutUseCase{payouts: pr}
}

// Request logs a payout request for the calling instructor. The amount is taken as
// given; there is no earnings balance to check it against.
func (uc *PayoutUseCase) Request(ctx context.Context, p *domain.Principal, amount float64) (*domain.Payout, error) {
	if err := access.CanRequestPayout(p); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.Invalid("amount must be greater than 0")
	}

	payout := &domain.Payout{
		ID:           uuid.New(),
		InstructorID: p.ID,
		Amount:       amount,
		Status:       domain.PayoutStatusPending,
	}
	if err := uc.payouts.Create(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

func (uc *PayoutUseCase) Mine(ctx context.Context, p *domain.Principal) ([]domain.Payout, error) {
	if err := access.CanRequestPayout(p); err != nil {
		return nil, err
	}
	return uc.payouts.ListByInstructor(ctx, p.ID)
}

func (uc *PayoutUseCase) All(ctx context.Context, p *domain.Principal) ([]domain.Payout, error) {
	if err := access.CanResolvePayout(p); err != nil {
		return nil, err
	}
	return uc.payouts.ListAll(ctx)
}

// Resolve sets the status directly. Any status can follow any other and nothing is
// deducted anywhere.
func (uc *PayoutUseCase) Resolve(ctx context.Context, p *domain.Principal, id uuid.UUID, status domain.PayoutStatus) (*domain.Payout, error) {
	if err := access.CanResolvePayout(p); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalid("status must be one of pending, approved, rejected")
	}
	return uc.payouts.UpdateStatus(ctx, id, status)
}
