package repository

import (
	"context"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

type FotdPayoutRepository interface {
	Create(ctx context.Context, payout *entity.FotdPayout) error
	GetByPeriodID(ctx context.Context, periodID string) (*entity.FotdPayout, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.FotdPayout, error)
}

type fotdPayoutRepository struct{}

func NewFotdPayoutRepository() *fotdPayoutRepository {
	return &fotdPayoutRepository{}
}

func (r *fotdPayoutRepository) Create(ctx context.Context, payout *entity.FotdPayout) error {
	return xcontext.DB(ctx).Create(payout).Error
}

func (r *fotdPayoutRepository) GetByPeriodID(
	ctx context.Context, periodID string,
) (*entity.FotdPayout, error) {
	var result entity.FotdPayout
	if err := xcontext.DB(ctx).Take(&result, "period_id=?", periodID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fotdPayoutRepository) GetList(
	ctx context.Context, offset, limit int,
) ([]entity.FotdPayout, error) {
	var result []entity.FotdPayout
	err := xcontext.DB(ctx).
		Preload("Frog").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
