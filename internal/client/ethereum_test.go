package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/eth-wallet/internal/contract"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newNode answers the given methods with fixed hex results
func newNode(t *testing.T, results map[string]string, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDial(t *testing.T) {
	node := newNode(t, map[string]string{
		"eth_chainId":    "0x5",
		"eth_getBalance": "0xde0b6b3a7640000",
	}, 0)

	c, err := Dial(context.Background(), node.URL, time.Second)
	require.NoError(t, err)
	defer c.Close()

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id.Int64())

	// callers may not mutate the cached id
	id.SetInt64(99)
	again, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), again.Int64())
}

func TestDialerBalance(t *testing.T) {
	node := newNode(t, map[string]string{
		"eth_chainId":    "0x1",
		"eth_getBalance": "0xde0b6b3a7640000",
	}, 0)

	inv := contract.NewInvoker(contract.Config{URL: node.URL, Dial: Dialer(time.Second)})
	bal, err := inv.Balance(context.Background(), common.Address{})
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", bal.String())
}

func TestDialFailures(t *testing.T) {
	noChainID := newNode(t, map[string]string{}, 0)
	slow := newNode(t, map[string]string{"eth_chainId": "0x1"}, 300*time.Millisecond)

	cases := []struct {
		name    string
		url     string
		timeout time.Duration
	}{
		{"bad scheme", "ftp://node.example", time.Second},
		{"no scheme", "mainnet.infura.io", time.Second},
		{"no host", "https://", time.Second},
		{"unreachable", "http://127.0.0.1:1", time.Second},
		{"rpc error", noChainID.URL, time.Second},
		{"timeout", slow.URL, 50 * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Dial(context.Background(), tc.url, tc.timeout)
			assert.ErrorIs(t, err, contract.ErrProviderUnavailable)
		})
	}
}
