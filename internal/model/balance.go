package model

// BalanceResponse represents response for GET /account/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Wei     string `json:"wei"`
	Ether   string `json:"ether"`
}
