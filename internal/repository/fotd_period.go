package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FotdPeriodRepository interface {
	Create(ctx context.Context, period *entity.FotdPeriod) error
	CreateIfNoneActive(ctx context.Context, period *entity.FotdPeriod, now time.Time) error
	GetByID(ctx context.Context, id string) (*entity.FotdPeriod, error)
	GetActive(ctx context.Context, now time.Time) (*entity.FotdPeriod, error)
	GetLastUnprocessedExpired(ctx context.Context, now time.Time) (*entity.FotdPeriod, error)
	Count(ctx context.Context) (int64, error)
	MarkProcessed(ctx context.Context, id string, outcome entity.FotdOutcomeType, winnerFrogID sql.NullString) error
	UpdateOutcome(ctx context.Context, id string, outcome entity.FotdOutcomeType) error
}

type fotdPeriodRepository struct{}

func NewFotdPeriodRepository() *fotdPeriodRepository {
	return &fotdPeriodRepository{}
}

func (r *fotdPeriodRepository) Create(ctx context.Context, period *entity.FotdPeriod) error {
	return xcontext.DB(ctx).Create(period).Error
}

// CreateIfNoneActive inserts the period only if no period is active at the
// given instant. The check and the insert run as one statement, so creation
// races between replicas resolve at the store: the loser gets
// gorm.ErrRecordNotFound and must treat the rollover as already done.
func (r *fotdPeriodRepository) CreateIfNoneActive(
	ctx context.Context, period *entity.FotdPeriod, now time.Time,
) error {
	tx := xcontext.DB(ctx).Exec(`
		INSERT INTO fotd_periods (id, created_at, updated_at, start_time, end_time, processed, outcome)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM fotd_periods WHERE end_time > ? AND deleted_at IS NULL
		)`,
		period.ID, now, now, period.StartTime, period.EndTime, period.Processed, period.Outcome,
		now,
	)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *fotdPeriodRepository) GetByID(ctx context.Context, id string) (*entity.FotdPeriod, error) {
	var result entity.FotdPeriod
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fotdPeriodRepository) GetActive(
	ctx context.Context, now time.Time,
) (*entity.FotdPeriod, error) {
	var result entity.FotdPeriod
	err := xcontext.DB(ctx).
		Where("end_time > ?", now).
		Order("end_time DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fotdPeriodRepository) GetLastUnprocessedExpired(
	ctx context.Context, now time.Time,
) (*entity.FotdPeriod, error) {
	var result entity.FotdPeriod
	err := xcontext.DB(ctx).
		Where("end_time <= ? AND processed = ?", now, false).
		Order("end_time DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fotdPeriodRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.FotdPeriod{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// MarkProcessed claims the period. The condition on the processed flag makes
// the claim exclusive: of N concurrent callers exactly one succeeds, the rest
// get gorm.ErrRecordNotFound and must treat the period as already handled.
func (r *fotdPeriodRepository) MarkProcessed(
	ctx context.Context,
	id string,
	outcome entity.FotdOutcomeType,
	winnerFrogID sql.NullString,
) error {
	tx := xcontext.DB(ctx).Model(&entity.FotdPeriod{}).
		Where("id=? AND processed=?", id, false).
		Updates(map[string]any{
			"processed":      true,
			"outcome":        outcome,
			"winner_frog_id": winnerFrogID,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateOutcome refines the outcome of an already claimed period once the
// settlement result is known. It never touches the processed flag.
func (r *fotdPeriodRepository) UpdateOutcome(
	ctx context.Context, id string, outcome entity.FotdOutcomeType,
) error {
	tx := xcontext.DB(ctx).Model(&entity.FotdPeriod{}).
		Where("id=? AND processed=?", id, true).
		Update("outcome", outcome)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
