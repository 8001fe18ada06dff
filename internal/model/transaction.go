package model

// TransactionState transaction lifecycle state
type TransactionState string

const (
	TransactionStateBuilt     TransactionState = "built"
	TransactionStateSigned    TransactionState = "signed"
	TransactionStateBroadcast TransactionState = "broadcast"
	TransactionStateConfirmed TransactionState = "confirmed"
	TransactionStateFailed    TransactionState = "failed"
)

// Transaction represents a submitted state-changing call
type Transaction struct {
	TxHash      string           `json:"txHash"`
	State       TransactionState `json:"state"`
	BlockNumber int64            `json:"blockNumber,omitempty"` // set once mined
	GasUsed     uint64           `json:"gasUsed,omitempty"`
}
