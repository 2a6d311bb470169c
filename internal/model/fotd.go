package model

type GetFOTDRequest struct{}

// GetFOTDResponse keeps the original public API field names so existing
// frontends keep working. CurrentFrog and PeriodEndsAt are null while no
// period is active; TimeRemaining is milliseconds until the period ends.
type GetFOTDResponse struct {
	Success       bool    `json:"success"`
	CurrentFrog   *Frog   `json:"currentFrog"`
	PeriodEndsAt  *string `json:"periodEndsAt"`
	TimeRemaining int64   `json:"timeRemaining"`
}

type ProcessFOTDWinnerRequest struct{}

type ProcessFOTDWinnerResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NextPeriodEnds string `json:"nextPeriodEnds,omitempty"`
}

type BootstrapFOTDRequest struct{}

type BootstrapFOTDResponse struct {
	Success      bool   `json:"success"`
	PeriodEndsAt string `json:"periodEndsAt"`
}

type GetHallOfFameRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type HallOfFameWinner struct {
	Frog      Frog   `json:"frog"`
	Amount    string `json:"amount"`
	TxHash    string `json:"tx_hash"`
	Chain     string `json:"chain"`
	AwardedAt string `json:"awarded_at"`
}

type GetHallOfFameResponse struct {
	Winners []HallOfFameWinner `json:"winners"`
}
