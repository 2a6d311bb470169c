package entity

import (
	"database/sql"
	"time"

	"github.com/federation-of-frogs/backend/pkg/enum"
)

type FotdOutcomeType string

var (
	FotdOutcomeUnprocessed     = enum.New(FotdOutcomeType("unprocessed"))
	FotdOutcomeNoEntries       = enum.New(FotdOutcomeType("no_entries"))
	FotdOutcomePayoutSucceeded = enum.New(FotdOutcomeType("payout_succeeded"))
	FotdOutcomePayoutSkipped   = enum.New(FotdOutcomeType("payout_skipped_insufficient_funds"))
	FotdOutcomePayoutFailed    = enum.New(FotdOutcomeType("payout_failed"))
)

// FotdPeriod is one contest round. Only the lifecycle manager creates or
// mutates periods; Processed is monotonic and guarded by a conditional update.
type FotdPeriod struct {
	Base

	StartTime time.Time `gorm:"index"`
	EndTime   time.Time `gorm:"index"`

	Processed    bool
	Outcome      FotdOutcomeType
	WinnerFrogID sql.NullString
}

// FotdPayout is the append-only ledger of settled payouts. The unique index on
// PeriodID is the store-level guarantee that a period never pays twice.
type FotdPayout struct {
	Base

	PeriodID string `gorm:"uniqueIndex"`
	FrogID   string
	Frog     Frog `gorm:"foreignKey:FrogID"`

	WalletAddress string
	RarityScore   int

	// Amount is the paid amount in the token's smallest unit, stored as a
	// decimal string since it can exceed 64 bits.
	Amount string

	TxHash string
	Chain  string
}
