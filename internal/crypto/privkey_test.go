package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  KeyFormat
	}{
		{"0123456789", FormatDecimal},
		{"7", FormatDecimal},
		{"123abc", FormatHex},
		{"abc123", FormatHex},
		{"ABCDEF", FormatHex},
		{"1a2B3c", FormatHex},
		{"12g4", FormatInvalid},
		{"0x12", FormatInvalid},
		{"12 34", FormatInvalid},
		{"", FormatInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

// Once a hex letter is seen, trailing digits keep the result hex; an
// invalid character anywhere wins over everything seen before it.
func TestClassifyOrderRule(t *testing.T) {
	assert.Equal(t, FormatHex, Classify("a0000000"))
	assert.Equal(t, FormatHex, Classify("0000000a"))
	assert.Equal(t, FormatInvalid, Classify("abcdef0z"))
	assert.Equal(t, FormatInvalid, Classify("z0abcdef"))
	assert.Equal(t, FormatInvalid, Classify("123-"))
}

func TestDecodeHex(t *testing.T) {
	for i := 0; i < 32; i++ {
		raw := make([]byte, 32)
		_, err := rand.Read(raw)
		require.NoError(t, err)

		encoded := hex.EncodeToString(raw)
		if Classify(encoded) == FormatDecimal {
			// all-digit hex strings are read as base 10 here
			continue
		}
		got, err := Decode(encoded, FormatHex)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestDecodeHexWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 62, 63, 65, 66, 128} {
		input := strings.Repeat("a", n)
		_, err := Decode(input, FormatHex)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey, "length %d", n)
	}
}

func TestDecodeDecimal(t *testing.T) {
	// 2^255 prints as 64 hex characters
	n := new(big.Int).Lsh(big.NewInt(1), 255)
	got, err := Decode(n.String(), FormatDecimal)
	require.NoError(t, err)
	assert.Equal(t, n.FillBytes(make([]byte, 32)), got)

	// 2^252 - 1 prints as 63 hex characters
	small := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 252), big.NewInt(1))
	_, err = Decode(small.String(), FormatDecimal)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	// 2^256 prints as 65 hex characters
	big256 := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = Decode(big256.String(), FormatDecimal)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestDecodeDecimalRejectsSign(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 255)
	for _, in := range []string{"+" + n.String(), "-" + n.String(), " " + n.String(), ""} {
		_, err := Decode(in, FormatDecimal)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey, in)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.Repeat("1", 64), FormatInvalid)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestDecodeShortHexInput(t *testing.T) {
	input := "123abc"
	require.Equal(t, FormatHex, Classify(input))
	_, err := Decode(input, Classify(input))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestParsePrivateKey(t *testing.T) {
	one := strings.Repeat("0", 63) + "1"

	got, err := ParsePrivateKey(one)
	require.NoError(t, err)
	want := make([]byte, 32)
	want[31] = 1
	assert.Equal(t, want, got)

	got, err = ParsePrivateKey("0x" + one)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// zero is not a valid scalar
	_, err = ParsePrivateKey(strings.Repeat("0", 64))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	// curve order n is out of range
	_, err = ParsePrivateKey("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = ParsePrivateKey("not a key")
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	// decimal form of a key with a full-width hex encoding
	n := new(big.Int).Lsh(big.NewInt(1), 255)
	got, err = ParsePrivateKey(n.String())
	require.NoError(t, err)
	assert.Equal(t, n.FillBytes(make([]byte, 32)), got)
}
