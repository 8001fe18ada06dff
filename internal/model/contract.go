package model

import (
	"fmt"
	"strings"
)

// InvokeRequest represents request for POST /contract/invoke
type InvokeRequest struct {
	Contract string   `json:"contract" binding:"required"` // e.g. "BBI"
	Method   string   `json:"method" binding:"required"`
	Args     []string `json:"args"`
	Value    string   `json:"value,omitempty"` // ether sent with a payable method, e.g. "0.5"
}

// Validate validates InvokeRequest fields.
func (r *InvokeRequest) Validate() error {
	if strings.TrimSpace(r.Contract) == "" {
		return fmt.Errorf("contract is required")
	}
	if strings.TrimSpace(r.Method) == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// InvokeResponse represents response for POST /contract/invoke.
// Reads fill Values/Display, writes fill Transaction.
type InvokeResponse struct {
	Contract    string       `json:"contract"`
	Method      string       `json:"method"`
	Kind        string       `json:"kind"` // "call" or "transaction"
	Values      []string     `json:"values,omitempty"`
	Display     string       `json:"display,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
}
