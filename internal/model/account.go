package model

// AccountResponse represents response for POST /account/generate, POST /account/import and GET /account
type AccountResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG of the address
}

// ImportRequest represents request for POST /account/import
type ImportRequest struct {
	PrivateKey string `json:"privateKey" binding:"required"` // 64 hex chars (optional 0x) or decimal
}
