package crypto

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	privateKeyLen    = 32               // secp256k1 scalar size in bytes
	privateKeyHexLen = privateKeyLen * 2 // 64 hex characters
)

// ErrInvalidPrivateKey is returned for any private key string that cannot be
// turned into exactly 32 bytes of valid key material.
var ErrInvalidPrivateKey = errors.New("invalid private key")

// KeyFormat is the textual encoding of a private key string
type KeyFormat int

const (
	FormatInvalid KeyFormat = iota
	FormatDecimal
	FormatHex
)

func (f KeyFormat) String() string {
	switch f {
	case FormatDecimal:
		return "decimal"
	case FormatHex:
		return "hex"
	default:
		return "invalid"
	}
}

// Classify scans the input once, left to right. A character outside [0-9a-fA-F]
// makes the input invalid at once. A hex letter switches the result to hex and
// later digits do not switch it back.
func Classify(input string) KeyFormat {
	if input == "" {
		return FormatInvalid
	}

	isHex := false
	format := FormatInvalid
	for _, c := range strings.ToLower(input) {
		switch {
		case c >= '0' && c <= '9':
			if !isHex {
				format = FormatDecimal
			}
		case c >= 'a' && c <= 'f':
			format = FormatHex
			isHex = true
		default:
			return FormatInvalid
		}
	}
	return format
}

// Decode converts a classified key string into 32 big-endian bytes.
// Decimal input is re-encoded as base 16 and that text must be 64 characters long;
// hex input must itself be 64 characters long.
func Decode(input string, format KeyFormat) ([]byte, error) {
	var hexKey string

	switch format {
	case FormatDecimal:
		if !allDigits(input) {
			return nil, ErrInvalidPrivateKey
		}
		n, ok := new(big.Int).SetString(input, 10)
		if !ok {
			return nil, ErrInvalidPrivateKey
		}
		hexKey = n.Text(16)
	case FormatHex:
		hexKey = input
	default:
		return nil, ErrInvalidPrivateKey
	}

	if len(hexKey) != privateKeyHexLen {
		return nil, ErrInvalidPrivateKey
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	return key, nil
}

// ParsePrivateKey accepts a user supplied key with an optional 0x prefix and
// returns the raw key bytes. A 64 character all-digit string is read as hex,
// since it already has the canonical key length. The result is checked to be
// a valid secp256k1 scalar.
func ParsePrivateKey(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		input = input[2:]
	}

	format := Classify(input)
	if format == FormatDecimal && len(input) == privateKeyHexLen {
		format = FormatHex
	}

	key, err := Decode(input, format)
	if err != nil {
		return nil, err
	}

	// ToECDSA rejects zero and values >= the curve order
	if _, err := ethcrypto.ToECDSA(key); err != nil {
		clear(key)
		return nil, ErrInvalidPrivateKey
	}
	return key, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
