package model

import (
	"time"

	"github.com/federation-of-frogs/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertFrog(frog *entity.Frog) Frog {
	if frog == nil {
		return Frog{}
	}

	return Frog{
		ID:            frog.ID,
		WalletAddress: frog.WalletAddress,
		ImageData:     frog.ImageData,
		Traits:        frog.Traits,
		RarityScore:   frog.RarityScore,
		RarityRank:    frog.RarityRank,
		MintedAt:      frog.MintedAt.Format(DefaultTimeLayout),
	}
}

func ConvertHallOfFameWinner(payout *entity.FotdPayout) HallOfFameWinner {
	if payout == nil {
		return HallOfFameWinner{}
	}

	return HallOfFameWinner{
		Frog:      ConvertFrog(&payout.Frog),
		Amount:    payout.Amount,
		TxHash:    payout.TxHash,
		Chain:     payout.Chain,
		AwardedAt: payout.CreatedAt.Format(DefaultTimeLayout),
	}
}
