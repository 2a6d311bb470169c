package domain

import (
	"testing"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/internal/model"
	"github.com/federation-of-frogs/backend/internal/repository"
	"github.com/federation-of-frogs/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_frogDomain_SaveFrog(t *testing.T) {
	ctx := testutil.MockContext()
	frogRepo := repository.NewFrogRepository()
	payoutRepo := repository.NewFotdPayoutRepository()
	frogDomain := NewFrogDomain(frogRepo, payoutRepo)

	req := &model.SaveFrogRequest{
		WalletAddress: "0xminter",
		Signature:     "5KtP3...",
		ImageData:     "data:image/png;base64,xxx",
		Traits:        map[string]any{"background": map[string]any{"path": "bg/blue.png", "weight": 10.0}},
		RarityScore:   73,
		RarityRank:    "Rare",
	}

	resp, err := frogDomain.SaveFrog(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "0xminter", resp.Frog.WalletAddress)
	require.Equal(t, 73, resp.Frog.RarityScore)
	require.NotEmpty(t, resp.Frog.ID)
	require.NotEmpty(t, resp.Frog.MintedAt)

	stored, err := frogRepo.GetByID(ctx, resp.Frog.ID)
	require.NoError(t, err)
	require.Equal(t, "5KtP3...", stored.Signature)
	require.WithinDuration(t, time.Now(), stored.MintedAt, time.Minute)
}

func Test_frogDomain_SaveFrog_rejectsIncompleteRequests(t *testing.T) {
	ctx := testutil.MockContext()
	frogDomain := NewFrogDomain(repository.NewFrogRepository(), repository.NewFotdPayoutRepository())

	_, err := frogDomain.SaveFrog(ctx, &model.SaveFrogRequest{
		Signature: "sig", ImageData: "data",
	})
	require.EqualError(t, err, "Not found wallet address")

	_, err = frogDomain.SaveFrog(ctx, &model.SaveFrogRequest{
		WalletAddress: "0x1", ImageData: "data",
	})
	require.EqualError(t, err, "Not found mint signature")

	_, err = frogDomain.SaveFrog(ctx, &model.SaveFrogRequest{
		WalletAddress: "0x1", Signature: "sig",
	})
	require.EqualError(t, err, "Not found image data")

	_, err = frogDomain.SaveFrog(ctx, &model.SaveFrogRequest{
		WalletAddress: "0x1", Signature: "sig", ImageData: "data", RarityScore: -1,
	})
	require.EqualError(t, err, "Invalid rarity score")
}

func Test_frogDomain_ListFrogs(t *testing.T) {
	ctx := testutil.MockContext()
	frogRepo := repository.NewFrogRepository()
	frogDomain := NewFrogDomain(frogRepo, repository.NewFotdPayoutRepository())

	now := time.Now()
	createSampleFrog(t, ctx, frogRepo, "0xold", 10, now.Add(-2*time.Hour), now.Add(-2*time.Hour))
	newest := createSampleFrog(t, ctx, frogRepo, "0xnew", 20, now.Add(-time.Hour), now.Add(-time.Hour))

	resp, err := frogDomain.ListFrogs(ctx, &model.ListFrogsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Frogs, 2)
	require.Equal(t, newest.ID, resp.Frogs[0].ID)

	resp, err = frogDomain.ListFrogs(ctx, &model.ListFrogsRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Frogs, 1)

	_, err = frogDomain.ListFrogs(ctx, &model.ListFrogsRequest{Limit: 51})
	require.EqualError(t, err, "Exceed the maximum of limit (50)")
}

func Test_frogDomain_GetHallOfFame(t *testing.T) {
	ctx := testutil.MockContext()
	frogRepo := repository.NewFrogRepository()
	payoutRepo := repository.NewFotdPayoutRepository()
	frogDomain := NewFrogDomain(frogRepo, payoutRepo)

	now := time.Now()
	winner := createSampleFrog(t, ctx, frogRepo, "0xwinner", 88, now.Add(-26*time.Hour), now.Add(-26*time.Hour))

	require.NoError(t, payoutRepo.Create(ctx, &entity.FotdPayout{
		Base:          entity.Base{ID: uuid.NewString()},
		PeriodID:      uuid.NewString(),
		FrogID:        winner.ID,
		WalletAddress: winner.WalletAddress,
		RarityScore:   winner.RarityScore,
		Amount:        "250",
		TxHash:        "0xdeadbeef",
		Chain:         "testchain",
	}))

	resp, err := frogDomain.GetHallOfFame(ctx, &model.GetHallOfFameRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Winners, 1)
	require.Equal(t, winner.ID, resp.Winners[0].Frog.ID)
	require.Equal(t, "0xwinner", resp.Winners[0].Frog.WalletAddress)
	require.Equal(t, "250", resp.Winners[0].Amount)
	require.Equal(t, "0xdeadbeef", resp.Winners[0].TxHash)
}
