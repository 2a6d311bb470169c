package domain

import (
	"context"
	"errors"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/internal/model"
	"github.com/federation-of-frogs/backend/internal/repository"
	"github.com/federation-of-frogs/backend/pkg/errorx"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxListLimit = 50

type FrogDomain interface {
	SaveFrog(ctx context.Context, req *model.SaveFrogRequest) (*model.SaveFrogResponse, error)
	ListFrogs(ctx context.Context, req *model.ListFrogsRequest) (*model.ListFrogsResponse, error)
	GetHallOfFame(ctx context.Context, req *model.GetHallOfFameRequest) (*model.GetHallOfFameResponse, error)
}

type frogDomain struct {
	frogRepo   repository.FrogRepository
	payoutRepo repository.FotdPayoutRepository
}

func NewFrogDomain(
	frogRepo repository.FrogRepository,
	payoutRepo repository.FotdPayoutRepository,
) *frogDomain {
	return &frogDomain{
		frogRepo:   frogRepo,
		payoutRepo: payoutRepo,
	}
}

// SaveFrog stores a minted entry. Rarity comes from the client-side generator;
// the server only records it. Saving never touches the period lifecycle, the
// entry simply competes in whichever period covers its mint time.
func (d *frogDomain) SaveFrog(
	ctx context.Context, req *model.SaveFrogRequest,
) (*model.SaveFrogResponse, error) {
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found wallet address")
	}

	if req.Signature == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found mint signature")
	}

	if req.ImageData == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found image data")
	}

	if req.RarityScore < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid rarity score")
	}

	frog := &entity.Frog{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: req.WalletAddress,
		Signature:     req.Signature,
		ImageData:     req.ImageData,
		Traits:        req.Traits,
		RarityScore:   req.RarityScore,
		RarityRank:    req.RarityRank,
		MintedAt:      time.Now(),
	}

	if err := d.frogRepo.Create(ctx, frog); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the frog: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SaveFrogResponse{Frog: model.ConvertFrog(frog)}, nil
}

func (d *frogDomain) ListFrogs(
	ctx context.Context, req *model.ListFrogsRequest,
) (*model.ListFrogsResponse, error) {
	if req.Limit == 0 {
		req.Limit = maxListLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > maxListLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", maxListLimit)
	}

	frogs, err := d.frogRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the list of frogs: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp := &model.ListFrogsResponse{Frogs: []model.Frog{}}
	for i := range frogs {
		resp.Frogs = append(resp.Frogs, model.ConvertFrog(&frogs[i]))
	}

	return resp, nil
}

// GetHallOfFame lists past winners from the payout ledger, newest first. Only
// periods with a confirmed payout appear here.
func (d *frogDomain) GetHallOfFame(
	ctx context.Context, req *model.GetHallOfFameRequest,
) (*model.GetHallOfFameResponse, error) {
	if req.Limit == 0 {
		req.Limit = maxListLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > maxListLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", maxListLimit)
	}

	payouts, err := d.payoutRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the payout ledger: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetHallOfFameResponse{Winners: []model.HallOfFameWinner{}}
	for i := range payouts {
		resp.Winners = append(resp.Winners, model.ConvertHallOfFameWinner(&payouts[i]))
	}

	return resp, nil
}
