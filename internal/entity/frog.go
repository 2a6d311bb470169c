package entity

import (
	"time"
)

// Frog is a minted entry. It is created by the mint flow and never mutated
// afterwards; the FOTD lifecycle only reads it.
type Frog struct {
	Base

	WalletAddress string `gorm:"index"`

	// Signature is the mint payment transaction signature submitted by the
	// wallet.
	Signature string

	// ImageData is the composited pixel art as a data URL.
	ImageData string `gorm:"type:longtext"`

	// Traits maps the seven layer names to {path, weight} pairs chosen by the
	// client-side generator.
	Traits Map

	RarityScore int `gorm:"index"`
	RarityRank  string

	MintedAt time.Time `gorm:"index"`
}
