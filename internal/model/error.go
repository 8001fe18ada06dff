package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error       string       `json:"error"`
	Code        string       `json:"code,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"` // set when a sent transaction failed
}

// Error codes carried in ErrorResponse.Code
const (
	CodeInvalidPrivateKey   = "invalid_private_key"
	CodeDecryptionFailure   = "decryption_failure"
	CodeNoAccount           = "no_account"
	CodeProviderUnavailable = "provider_unavailable"
	CodeContractResolution  = "contract_resolution"
	CodeInvalidMethod       = "invalid_method"
	CodeSmartContract       = "smart_contract"
	CodeSigning             = "signing"
	CodeTxHash              = "tx_hash"
	CodeCooldown            = "cooldown"
	CodeBadRequest          = "bad_request"
	CodeInternal            = "internal"
)
