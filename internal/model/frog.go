package model

type Frog struct {
	ID            string         `json:"id"`
	WalletAddress string         `json:"wallet_address"`
	ImageData     string         `json:"image_data"`
	Traits        map[string]any `json:"traits"`
	RarityScore   int            `json:"rarity_score"`
	RarityRank    string         `json:"rarity_rank"`
	MintedAt      string         `json:"minted_at"`
}

type SaveFrogRequest struct {
	WalletAddress string         `json:"wallet_address"`
	Signature     string         `json:"signature"`
	ImageData     string         `json:"image_data"`
	Traits        map[string]any `json:"traits"`
	RarityScore   int            `json:"rarity_score"`
	RarityRank    string         `json:"rarity_rank"`
}

type SaveFrogResponse struct {
	Frog Frog `json:"frog"`
}

type ListFrogsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type ListFrogsResponse struct {
	Frogs []Frog `json:"frogs"`
}
