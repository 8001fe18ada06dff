package contract

import "errors"

// Contract invocation errors. Returned errors wrap one of these together with
// the underlying cause; test with errors.Is.
var (
	ErrProviderUnavailable       = errors.New("web3 provider not found")
	ErrUnknownContract           = errors.New("unknown contract type")
	ErrContractResolution        = errors.New("contract could not be bound")
	ErrInvalidMethod             = errors.New("invalid contract method")
	ErrSmartContractFailure      = errors.New("smart contract call failed")
	ErrTransactionSigningFailure = errors.New("transaction signing failed")
	ErrTXHashReceiveFailure      = errors.New("transaction hash not received")
)
