package repository

import (
	"context"
	"testing"
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createFrog(
	t *testing.T, ctx context.Context, repo FrogRepository,
	rarity int, mintedAt, createdAt time.Time,
) *entity.Frog {
	frog := &entity.Frog{
		Base:          entity.Base{ID: uuid.NewString(), CreatedAt: createdAt},
		WalletAddress: "0x" + uuid.NewString(),
		Signature:     "sig",
		ImageData:     "data:image/png;base64,xxx",
		RarityScore:   rarity,
		MintedAt:      mintedAt,
	}
	require.NoError(t, repo.Create(ctx, frog))

	return frog
}

func Test_frogRepository_GetHighestRarityInRange(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewFrogRepository()

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()

	_, err := repo.GetHighestRarityInRange(ctx, start, end)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	createFrog(t, ctx, repo, 10, start.Add(time.Hour), start.Add(time.Hour))
	rarest := createFrog(t, ctx, repo, 99, start.Add(2*time.Hour), start.Add(2*time.Hour))
	createFrog(t, ctx, repo, 50, start.Add(3*time.Hour), start.Add(3*time.Hour))

	// Out of range on both sides. The end of the range is exclusive.
	createFrog(t, ctx, repo, 200, start.Add(-time.Minute), start.Add(-time.Minute))
	createFrog(t, ctx, repo, 200, end, end)

	found, err := repo.GetHighestRarityInRange(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, rarest.ID, found.ID)
}

func Test_frogRepository_GetHighestRarityInRange_tieBreaks(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewFrogRepository()

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()

	// Same score: the earlier mint wins.
	later := createFrog(t, ctx, repo, 42, start.Add(2*time.Hour), start.Add(2*time.Hour))
	earlier := createFrog(t, ctx, repo, 42, start.Add(time.Hour), start.Add(time.Hour))

	found, err := repo.GetHighestRarityInRange(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, earlier.ID, found.ID)

	// Same score and mint time: insertion order decides.
	mintedAt := earlier.MintedAt
	require.NoError(t, repo.Create(ctx, &entity.Frog{
		Base:          entity.Base{ID: uuid.NewString(), CreatedAt: later.CreatedAt},
		WalletAddress: "0xcopycat",
		Signature:     "sig",
		ImageData:     "data:image/png;base64,xxx",
		RarityScore:   42,
		MintedAt:      mintedAt,
	}))

	found, err = repo.GetHighestRarityInRange(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, earlier.ID, found.ID)
}

func Test_frogRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewFrogRepository()

	now := time.Now()
	createFrog(t, ctx, repo, 10, now.Add(-3*time.Hour), now.Add(-3*time.Hour))
	createFrog(t, ctx, repo, 20, now.Add(-2*time.Hour), now.Add(-2*time.Hour))
	newest := createFrog(t, ctx, repo, 30, now.Add(-time.Hour), now.Add(-time.Hour))

	frogs, err := repo.GetList(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, frogs, 2)
	require.Equal(t, newest.ID, frogs[0].ID)

	frogs, err = repo.GetList(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, frogs, 1)
}
