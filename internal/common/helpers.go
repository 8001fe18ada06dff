package common

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	EtherDecimals = 18 // 1 ether = 10^18 wei
	EtherDisplay  = 2  // fraction digits shown for ether amounts
)

// WeiToEther converts wei to an ether string truncated to EtherDisplay digits
func WeiToEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals, EtherDisplay)
}

// EtherToWei converts an ether string to wei without float precision loss
func EtherToWei(ether string) (*big.Int, error) {
	return ParseUnits(ether, EtherDecimals)
}

// FormatUnits converts an integer amount of base units to a decimal string
// with at most precision fraction digits. Extra digits are truncated.
// Example: FormatUnits(1234567890000000000, 18, 2) = "1.23"
func FormatUnits(value *big.Int, decimals, precision int) string {
	if value == nil {
		value = new(big.Int)
	}
	neg := value.Sign() < 0
	s := new(big.Int).Abs(value).String()

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	pos := len(s) - decimals
	whole, frac := s[:pos], s[pos:]
	if precision < len(frac) {
		frac = frac[:precision]
	}

	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ParseUnits converts decimal string to integer base units by removing decimal point
// Example: ParseUnits("0.5", 18) = 500000000000000000
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" {
		whole = "0"
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	return n, nil
}
