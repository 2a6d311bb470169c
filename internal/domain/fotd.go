package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/internal/model"
	"github.com/federation-of-frogs/backend/internal/repository"
	"github.com/federation-of-frogs/backend/pkg/blockchain/interface"
	"github.com/federation-of-frogs/backend/pkg/errorx"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/federation-of-frogs/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	tickLeaseKey        = "fotd:tick-lease"
	standingCachePrefix = "fotd:standing:"
)

type FotdDomain interface {
	GetFOTD(ctx context.Context, req *model.GetFOTDRequest) (*model.GetFOTDResponse, error)
	Tick(ctx context.Context, req *model.ProcessFOTDWinnerRequest) (*model.ProcessFOTDWinnerResponse, error)
	Bootstrap(ctx context.Context, req *model.BootstrapFOTDRequest) (*model.BootstrapFOTDResponse, error)
}

type fotdDomain struct {
	frogRepo    repository.FrogRepository
	periodRepo  repository.FotdPeriodRepository
	payoutRepo  repository.FotdPayoutRepository
	paymentRail interfaze.PaymentRail

	// redisClient is optional. Without it ticks are serialized only inside
	// this process; the conditional claim in the period store still keeps
	// payouts exactly-once across replicas.
	redisClient xredis.Client

	tickMutex sync.Mutex
}

func NewFotdDomain(
	frogRepo repository.FrogRepository,
	periodRepo repository.FotdPeriodRepository,
	payoutRepo repository.FotdPayoutRepository,
	paymentRail interfaze.PaymentRail,
	redisClient xredis.Client,
) *fotdDomain {
	return &fotdDomain{
		frogRepo:    frogRepo,
		periodRepo:  periodRepo,
		payoutRepo:  payoutRepo,
		paymentRail: paymentRail,
		redisClient: redisClient,
	}
}

// GetFOTD reports the current standing. It never mutates periods: while no
// period is active the response carries nulls until the next lifecycle tick
// rolls over.
func (d *fotdDomain) GetFOTD(
	ctx context.Context, req *model.GetFOTDRequest,
) (*model.GetFOTDResponse, error) {
	now := time.Now()

	active, err := d.periodRepo.GetActive(ctx, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetFOTDResponse{Success: true, TimeRemaining: 0}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get the active period: %v", err)
		return nil, errorx.Unknown
	}

	endsAt := active.EndTime.Format(model.DefaultTimeLayout)
	resp := &model.GetFOTDResponse{
		Success:       true,
		PeriodEndsAt:  &endsAt,
		TimeRemaining: active.EndTime.Sub(now).Milliseconds(),
	}

	if frog, ok := d.cachedStanding(ctx, active.ID); ok {
		resp.CurrentFrog = frog
		return resp, nil
	}

	leader, err := d.frogRepo.GetHighestRarityInRange(ctx, active.StartTime, active.EndTime)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No entry minted in this period yet.
			return resp, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get the period leader: %v", err)
		return nil, errorx.Unknown
	}

	frog := model.ConvertFrog(leader)
	resp.CurrentFrog = &frog
	d.cacheStanding(ctx, active.ID, &frog)

	return resp, nil
}

// Tick advances the period lifecycle. It is safe to call from any number of
// schedulers at any cadence: overlapping ticks are serialized by a local mutex
// plus an optional redis lease, and the final line of defense is the
// conditional claim on the period row.
func (d *fotdDomain) Tick(
	ctx context.Context, req *model.ProcessFOTDWinnerRequest,
) (*model.ProcessFOTDWinnerResponse, error) {
	d.tickMutex.Lock()
	defer d.tickMutex.Unlock()

	fotdCfg := xcontext.Configs(ctx).Fotd
	if d.redisClient != nil {
		acquired, err := d.redisClient.SetNX(ctx, tickLeaseKey, "1", fotdCfg.TickLeaseTTL)
		if err != nil {
			// Degrade to the claim for cross-replica safety.
			xcontext.Logger(ctx).Warnf("Cannot acquire the tick lease: %v", err)
		} else if !acquired {
			return &model.ProcessFOTDWinnerResponse{
				Success: true,
				Message: "tick in progress",
			}, nil
		} else {
			defer func() {
				if err := d.redisClient.Del(ctx, tickLeaseKey); err != nil {
					xcontext.Logger(ctx).Warnf("Cannot release the tick lease: %v", err)
				}
			}()
		}
	}

	now := time.Now()

	active, err := d.periodRepo.GetActive(ctx, now)
	if err == nil {
		return &model.ProcessFOTDWinnerResponse{
			Success:        true,
			Message:        "period still active",
			NextPeriodEnds: active.EndTime.Format(model.DefaultTimeLayout),
		}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the active period: %v", err)
		return nil, errorx.Unknown
	}

	expired, err := d.periodRepo.GetLastUnprocessedExpired(ctx, now)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the expired period: %v", err)
			return nil, errorx.Unknown
		}

		// Nothing to settle. Either no period has ever existed, or the last
		// claimant crashed after processing its period but before creating the
		// next one. Both cases recover by starting a fresh period now; the
		// conditional insert makes the recovery race-free between replicas.
		count, err := d.periodRepo.Count(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count periods: %v", err)
			return nil, errorx.Unknown
		}

		next, err := d.createPeriodIfNoneActive(ctx, now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Another replica rolled over first.
				return &model.ProcessFOTDWinnerResponse{
					Success: true,
					Message: "period still active",
				}, nil
			}

			return nil, err
		}

		message := "period created"
		if count == 0 {
			message = "first period created"
		}

		return &model.ProcessFOTDWinnerResponse{
			Success:        true,
			Message:        message,
			NextPeriodEnds: next.EndTime.Format(model.DefaultTimeLayout),
		}, nil
	}

	next, err := d.resolveAndClaim(ctx, expired, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Another caller holds the claim and created the next period.
			return &model.ProcessFOTDWinnerResponse{
				Success: true,
				Message: "period already claimed",
			}, nil
		}

		return nil, err
	}

	return &model.ProcessFOTDWinnerResponse{
		Success:        true,
		Message:        "period processed",
		NextPeriodEnds: next.EndTime.Format(model.DefaultTimeLayout),
	}, nil
}

// Bootstrap creates the very first period. It refuses to run once any period
// exists; from then on the lifecycle tick owns all period creation.
func (d *fotdDomain) Bootstrap(
	ctx context.Context, req *model.BootstrapFOTDRequest,
) (*model.BootstrapFOTDResponse, error) {
	d.tickMutex.Lock()
	defer d.tickMutex.Unlock()

	now := time.Now()

	active, err := d.periodRepo.GetActive(ctx, now)
	if err == nil {
		return &model.BootstrapFOTDResponse{
			Success:      true,
			PeriodEndsAt: active.EndTime.Format(model.DefaultTimeLayout),
		}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the active period: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.periodRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count periods: %v", err)
		return nil, errorx.Unknown
	}

	if count > 0 {
		return nil, errorx.New(errorx.Unavailable,
			"Expired periods are pending, trigger the lifecycle tick instead")
	}

	period, err := d.createPeriodIfNoneActive(ctx, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Another replica bootstrapped first.
			active, err := d.periodRepo.GetActive(ctx, time.Now())
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get the active period: %v", err)
				return nil, errorx.Unknown
			}

			return &model.BootstrapFOTDResponse{
				Success:      true,
				PeriodEndsAt: active.EndTime.Format(model.DefaultTimeLayout),
			}, nil
		}

		return nil, err
	}

	return &model.BootstrapFOTDResponse{
		Success:      true,
		PeriodEndsAt: period.EndTime.Format(model.DefaultTimeLayout),
	}, nil
}

// resolveAndClaim picks the winner of an expired period, claims the period
// and creates its successor, then settles the payout. It returns
// gorm.ErrRecordNotFound when another caller won the claim race. The claim
// happens BEFORE any payment attempt with a provisional failed outcome, so a
// crash mid-settlement can never lead to a second payout; it surfaces as a
// failed payout with no ledger row.
func (d *fotdDomain) resolveAndClaim(
	ctx context.Context, period *entity.FotdPeriod, now time.Time,
) (*entity.FotdPeriod, error) {
	winner, err := d.frogRepo.GetHighestRarityInRange(ctx, period.StartTime, period.EndTime)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot resolve the winner of period %s: %v", period.ID, err)
		return nil, errorx.Unknown
	}

	outcome := entity.FotdOutcomeNoEntries
	winnerID := sql.NullString{}
	if winner != nil {
		outcome = entity.FotdOutcomePayoutFailed
		winnerID = sql.NullString{String: winner.ID, Valid: true}
	}

	next := d.newPeriod(ctx, now)

	// The claim and the rollover commit together: no caller can observe a
	// processed period without its active successor, so a replica that is
	// still settling never coexists with a freshly created second period.
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.periodRepo.MarkProcessed(txCtx, period.ID, outcome, winnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot claim period %s: %v", period.ID, err)
		return nil, errorx.Unknown
	}

	if err := d.periodRepo.Create(txCtx, next); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create a new period: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(txCtx)

	// From here on the period is ours. Settlement failures are logged and left
	// as the provisional outcome; they never block the rollover.
	if winner != nil {
		d.settle(ctx, period, winner)
	}

	return next, nil
}

// settle pays the winner and refines the period outcome. It assumes the caller
// already claimed the period.
func (d *fotdDomain) settle(ctx context.Context, period *entity.FotdPeriod, winner *entity.Frog) {
	cfg := xcontext.Configs(ctx)

	settleCtx, cancel := context.WithTimeout(ctx, cfg.Fotd.SettlementTimeout)
	defer cancel()

	balance, err := d.paymentRail.GetTreasuryBalance(settleCtx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the treasury balance for period %s: %v", period.ID, err)
		return
	}

	// Integer percentage with truncation. A treasury too small to yield a
	// positive amount skips the transfer.
	amount := new(big.Int).Mul(balance, big.NewInt(cfg.Fotd.PayoutPercent))
	amount.Div(amount, big.NewInt(100))

	if amount.Sign() <= 0 {
		err := d.periodRepo.UpdateOutcome(ctx, period.ID, entity.FotdOutcomePayoutSkipped)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record the skipped payout of period %s: %v", period.ID, err)
		}

		return
	}

	txHash, err := d.paymentRail.Transfer(settleCtx, winner.WalletAddress, amount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pay the winner of period %s: %v", period.ID, err)
		return
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.payoutRepo.Create(ctx, &entity.FotdPayout{
		Base:          entity.Base{ID: uuid.NewString()},
		PeriodID:      period.ID,
		FrogID:        winner.ID,
		WalletAddress: winner.WalletAddress,
		RarityScore:   winner.RarityScore,
		Amount:        amount.String(),
		TxHash:        txHash,
		Chain:         cfg.Eth.Chain.Chain,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf(
			"Cannot record the payout of period %s (tx %s): %v", period.ID, txHash, err)
		return
	}

	err = d.periodRepo.UpdateOutcome(ctx, period.ID, entity.FotdOutcomePayoutSucceeded)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refine the outcome of period %s: %v", period.ID, err)
		return
	}

	xcontext.WithCommitDBTransaction(ctx)
}

func (d *fotdDomain) newPeriod(ctx context.Context, now time.Time) *entity.FotdPeriod {
	return &entity.FotdPeriod{
		Base:      entity.Base{ID: uuid.NewString()},
		StartTime: now,
		EndTime:   now.Add(xcontext.Configs(ctx).Fotd.PeriodDuration),
		Processed: false,
		Outcome:   entity.FotdOutcomeUnprocessed,
	}
}

// createPeriodIfNoneActive starts a fresh period unless one is already active.
// It passes through gorm.ErrRecordNotFound when another caller created the
// active period first.
func (d *fotdDomain) createPeriodIfNoneActive(
	ctx context.Context, now time.Time,
) (*entity.FotdPeriod, error) {
	period := d.newPeriod(ctx, now)
	if err := d.periodRepo.CreateIfNoneActive(ctx, period, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot create a new period: %v", err)
		return nil, errorx.Unknown
	}

	return period, nil
}

func (d *fotdDomain) cachedStanding(ctx context.Context, periodID string) (*model.Frog, bool) {
	if d.redisClient == nil || xcontext.Configs(ctx).Fotd.StandingCacheTTL <= 0 {
		return nil, false
	}

	value, err := d.redisClient.Get(ctx, standingCachePrefix+periodID)
	if err != nil {
		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot read the standing cache: %v", err)
		}

		return nil, false
	}

	var frog model.Frog
	if err := json.Unmarshal([]byte(value), &frog); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode the standing cache: %v", err)
		return nil, false
	}

	return &frog, true
}

func (d *fotdDomain) cacheStanding(ctx context.Context, periodID string, frog *model.Frog) {
	ttl := xcontext.Configs(ctx).Fotd.StandingCacheTTL
	if d.redisClient == nil || ttl <= 0 {
		return
	}

	b, err := json.Marshal(frog)
	if err != nil {
		return
	}

	if err := d.redisClient.Set(ctx, standingCachePrefix+periodID, string(b), ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write the standing cache: %v", err)
	}
}
