package repository

import (
	"context"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

type FrogRepository interface {
	Create(ctx context.Context, frog *entity.Frog) error
	GetByID(ctx context.Context, id string) (*entity.Frog, error)
	GetHighestRarityInRange(ctx context.Context, start, end time.Time) (*entity.Frog, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Frog, error)
}

type frogRepository struct{}

func NewFrogRepository() *frogRepository {
	return &frogRepository{}
}

func (r *frogRepository) Create(ctx context.Context, frog *entity.Frog) error {
	return xcontext.DB(ctx).Create(frog).Error
}

func (r *frogRepository) GetByID(ctx context.Context, id string) (*entity.Frog, error) {
	var result entity.Frog
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetHighestRarityInRange returns the rarest frog minted in [start, end). Ties
// on the score go to the earliest minted, then earliest inserted frog.
func (r *frogRepository) GetHighestRarityInRange(
	ctx context.Context, start, end time.Time,
) (*entity.Frog, error) {
	var result entity.Frog
	err := xcontext.DB(ctx).
		Where("minted_at >= ? AND minted_at < ?", start, end).
		Order("rarity_score DESC, minted_at ASC, created_at ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *frogRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Frog, error) {
	var result []entity.Frog
	err := xcontext.DB(ctx).
		Order("minted_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
