package contract

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const argsABI = `[{"type":"function","name":"f","stateMutability":"nonpayable","outputs":[],"inputs":[
 {"name":"to","type":"address"},
 {"name":"amount","type":"uint256"},
 {"name":"small","type":"uint8"},
 {"name":"delta","type":"int64"},
 {"name":"odd","type":"uint24"},
 {"name":"flag","type":"bool"},
 {"name":"memo","type":"string"},
 {"name":"blob","type":"bytes"},
 {"name":"tag","type":"bytes4"}
]}]`

func argsMethod(t *testing.T) abi.Method {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(argsABI))
	require.NoError(t, err)
	return parsed.Methods["f"]
}

func TestParseArgs(t *testing.T) {
	m := argsMethod(t)

	args, err := ParseArgs(m, []string{
		"0x37D40510a2F5Bc98AA7a0f7BF4b3453Bcfb90Ac1",
		"1000000000000000000",
		"255",
		"-42",
		"70000",
		"true",
		"hello",
		"0xdeadbeef",
		"0x0102",
	})
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress("0x37D40510a2F5Bc98AA7a0f7BF4b3453Bcfb90Ac1"), args[0])
	assert.Equal(t, "1000000000000000000", args[1].(*big.Int).String())
	assert.Equal(t, uint8(255), args[2])
	assert.Equal(t, int64(-42), args[3])
	assert.Equal(t, "70000", args[4].(*big.Int).String())
	assert.Equal(t, true, args[5])
	assert.Equal(t, "hello", args[6])
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, args[7])
	assert.Equal(t, [4]byte{1, 2, 0, 0}, args[8])

	// the packer accepts what ParseArgs produced
	_, err = m.Inputs.Pack(args...)
	require.NoError(t, err)
}

func TestParseArgsErrors(t *testing.T) {
	m := argsMethod(t)
	valid := []string{
		"0x37D40510a2F5Bc98AA7a0f7BF4b3453Bcfb90Ac1", "1", "1", "1", "1", "true", "", "0x", "0x",
	}

	_, err := ParseArgs(m, valid[:3])
	assert.ErrorIs(t, err, ErrInvalidMethod)

	cases := map[int]string{
		0: "0x1234",
		1: "-1",
		2: "256",
		3: "9223372036854775808",
		5: "maybe",
		7: "zz",
		8: "0x0102030405",
	}
	for idx, bad := range cases {
		args := append([]string(nil), valid...)
		args[idx] = bad
		_, err := ParseArgs(m, args)
		assert.ErrorIs(t, err, ErrInvalidMethod, "arg %d = %q", idx, bad)
	}
}
