package wallet

import (
	"context"
	"encoding/base64"
	"errors"
	"math/big"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

const keyOne = "0x0000000000000000000000000000000000000000000000000000000000000001"

var addrOne = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"

type stubBackend struct {
	callOut []byte
	balance *big.Int
	sent    int
	lastTx  *types.Transaction
	sendErr error
	receipt *types.Receipt
}

func (b *stubBackend) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return b.callOut, nil
}
func (b *stubBackend) PendingNonceAt(context.Context, ethcommon.Address) (uint64, error) {
	return 0, nil
}
func (b *stubBackend) SuggestGasPrice(context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (b *stubBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}
func (b *stubBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent++
	b.lastTx = tx
	return nil
}
func (b *stubBackend) ChainID(context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (b *stubBackend) TransactionReceipt(context.Context, ethcommon.Hash) (*types.Receipt, error) {
	if b.receipt == nil {
		return nil, ethereum.NotFound
	}
	return b.receipt, nil
}
func (b *stubBackend) BalanceAt(context.Context, ethcommon.Address, *big.Int) (*big.Int, error) {
	return b.balance, nil
}

func newStore(t *testing.T) *keystore.AccountStore {
	t.Helper()
	return keystore.New(filepath.Join(t.TempDir(), "KeyStore"),
		keystore.WithLightKDF(true), keystore.WithLogger(zap.NewNop()))
}

func newInvoker(store *keystore.AccountStore, b *stubBackend) *contract.Invoker {
	return contract.NewInvoker(contract.Config{
		URL: "https://node.example",
		Dial: func(context.Context, string) (contract.Backend, error) {
			return b, nil
		},
		Identity:     store,
		PollInterval: time.Millisecond,
		Logger:       zap.NewNop(),
	})
}

func resetCooldown(t *testing.T) {
	t.Helper()
	txMutex.Lock()
	lastTxTime = time.Time{}
	txMutex.Unlock()
	t.Cleanup(func() {
		txMutex.Lock()
		lastTxTime = time.Time{}
		txMutex.Unlock()
	})
}

func TestGenerateAccount(t *testing.T) {
	store := newStore(t)

	resp, err := GenerateAccount(store, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, keystore.DefaultName, resp.Name)
	assert.True(t, ethcommon.IsHexAddress(resp.Address))

	png, err := base64.StdEncoding.DecodeString(resp.QR)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	got, err := GetAccount(store)
	require.NoError(t, err)
	assert.Equal(t, resp.Address, got.Address)
}

func TestImportAccount(t *testing.T) {
	store := newStore(t)

	resp, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, addrOne, resp.Address)

	_, err = ImportAccount(store, "xyz", []byte("pw"))
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
}

func TestGetAccountMissing(t *testing.T) {
	_, err := GetAccount(newStore(t))
	assert.ErrorIs(t, err, keystore.ErrNoAccount)
}

func TestGetBalance(t *testing.T) {
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	resp, err := GetBalance(context.Background(), newInvoker(store, &stubBackend{balance: wei}), store)
	require.NoError(t, err)
	assert.Equal(t, &model.BalanceResponse{
		Address: addrOne,
		Wei:     "1500000000000000000",
		Ether:   "1.50",
	}, resp)
}

func TestInvokeRead(t *testing.T) {
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	inv := newInvoker(store, nil)
	d, err := inv.Registry().Resolve(contract.BBI)
	require.NoError(t, err)
	out, err := d.ABI().Methods["balanceOf"].Outputs.Pack(big.NewInt(2_500_000_000_000_000_000))
	require.NoError(t, err)

	b := &stubBackend{callOut: out}
	resp, err := Invoke(context.Background(), newInvoker(store, b), nil, &model.InvokeRequest{
		Contract: "BBI",
		Method:   "balanceOf",
		Args:     []string{addrOne},
	}, 60)
	require.NoError(t, err)
	assert.Equal(t, "call", resp.Kind)
	assert.Equal(t, []string{"2500000000000000000"}, resp.Values)
	assert.Equal(t, "2.50", resp.Display)
	assert.Nil(t, resp.Transaction)
}

func TestInvokeWriteCooldown(t *testing.T) {
	resetCooldown(t)
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	b := &stubBackend{}
	inv := newInvoker(store, b)
	req := &model.InvokeRequest{Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}}

	resp, err := Invoke(context.Background(), inv, []byte("pw"), req, 5)
	require.NoError(t, err)
	assert.Equal(t, "transaction", resp.Kind)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, model.TransactionStateBroadcast, resp.Transaction.State)
	assert.Len(t, resp.Transaction.TxHash, 66)

	_, err = Invoke(context.Background(), inv, []byte("pw"), req, 5)
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Equal(t, 1, b.sent)

	// reads are never throttled
	d, err := inv.Registry().Resolve(contract.BBI)
	require.NoError(t, err)
	b.callOut, err = d.ABI().Methods["hasClosed"].Outputs.Pack(false)
	require.NoError(t, err)
	resp, err = Invoke(context.Background(), inv, nil, &model.InvokeRequest{Contract: "BBI", Method: "hasClosed"}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, resp.Values)
}

func TestInvokeFailedBroadcastSkipsCooldown(t *testing.T) {
	resetCooldown(t)
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	b := &stubBackend{sendErr: errors.New("rejected")}
	inv := newInvoker(store, b)
	req := &model.InvokeRequest{Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}}

	_, err = Invoke(context.Background(), inv, []byte("pw"), req, 5)
	assert.ErrorIs(t, err, contract.ErrTXHashReceiveFailure)

	b.sendErr = nil
	_, err = Invoke(context.Background(), inv, []byte("pw"), req, 5)
	assert.NoError(t, err)
}

func TestInvokeRequestErrors(t *testing.T) {
	store := newStore(t)
	inv := newInvoker(store, &stubBackend{})

	_, err := Invoke(context.Background(), inv, nil, &model.InvokeRequest{Method: "x"}, 0)
	assert.ErrorIs(t, err, contract.ErrInvalidMethod)

	_, err = Invoke(context.Background(), inv, nil, &model.InvokeRequest{Contract: "NOPE", Method: "x"}, 0)
	assert.ErrorIs(t, err, contract.ErrUnknownContract)

	_, err = Invoke(context.Background(), inv, nil, &model.InvokeRequest{Contract: "BBI", Method: "nope"}, 0)
	assert.ErrorIs(t, err, contract.ErrInvalidMethod)

	_, err = Invoke(context.Background(), inv, nil, &model.InvokeRequest{
		Contract: "BBI", Method: "transfer", Args: []string{addrOne, "-1"},
	}, 0)
	assert.ErrorIs(t, err, contract.ErrInvalidMethod)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42", formatValue(big.NewInt(42)))
	assert.Equal(t, addrOne, formatValue(ethcommon.HexToAddress(addrOne)))
	assert.Equal(t, "0x0102", formatValue([]byte{1, 2}))
	assert.Equal(t, "0x0a0b0000", formatValue([4]byte{0x0a, 0x0b}))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "7", formatValue(uint8(7)))
}

func TestCallOptions(t *testing.T) {
	opts, err := CallOptions(&config.Config{GasPriceWei: "0"})
	require.NoError(t, err)
	assert.Equal(t, ethcommon.Address{}, opts.Sender)
	assert.Equal(t, 0, opts.GasPrice.Sign())

	opts, err = CallOptions(&config.Config{
		SenderAddress: strings.ToLower(addrOne),
		GasPriceWei:   "20000000000",
		GasLimit:      100000,
	})
	require.NoError(t, err)
	assert.Equal(t, ethcommon.HexToAddress(addrOne), opts.Sender)
	assert.Equal(t, "20000000000", opts.GasPrice.String())
	assert.Equal(t, uint64(100000), opts.GasLimit)

	_, err = CallOptions(&config.Config{SenderAddress: "0x123"})
	assert.Error(t, err)
	_, err = CallOptions(&config.Config{GasPriceWei: "-5"})
	assert.Error(t, err)
}

func TestNewInvoker(t *testing.T) {
	cfg := &config.Config{
		KeystoreDir:       t.TempDir(),
		AccountName:       "Other",
		KeystoreLightKDF:  true,
		RPCURL:            "https://node.example",
		RPCTimeoutSeconds: 1,
	}
	store := NewStore(cfg)
	assert.Equal(t, "Other", store.Name())

	inv, err := NewInvoker(cfg, store)
	require.NoError(t, err)
	assert.NotNil(t, inv.Registry())

	cfg.SenderAddress = "nope"
	_, err = NewInvoker(cfg, store)
	assert.Error(t, err)
}

func TestInvokeSendsValue(t *testing.T) {
	resetCooldown(t)
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	b := &stubBackend{}
	inv := newInvoker(store, b)

	_, err = Invoke(context.Background(), inv, []byte("pw"), &model.InvokeRequest{
		Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}, Value: "0.5",
	}, 0)
	require.NoError(t, err)
	require.NotNil(t, b.lastTx)
	assert.Equal(t, "500000000000000000", b.lastTx.Value().String())
}

func TestInvokeRejectsValue(t *testing.T) {
	resetCooldown(t)
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	b := &stubBackend{}
	inv := newInvoker(store, b)

	cases := []*model.InvokeRequest{
		{Contract: "BBI", Method: "transfer", Args: []string{addrOne, "1"}, Value: "1"},
		{Contract: "BBI", Method: "etherRaised", Value: "0.1"},
		{Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}, Value: "lots"},
		{Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}, Value: "-1"},
	}
	for _, req := range cases {
		_, err := Invoke(context.Background(), inv, []byte("pw"), req, 0)
		assert.ErrorIs(t, err, contract.ErrInvalidMethod, req.Method+" "+req.Value)
	}
	assert.Zero(t, b.sent)
}

func TestInvokeRevertKeepsHash(t *testing.T) {
	resetCooldown(t)
	store := newStore(t)
	_, err := ImportAccount(store, keyOne, []byte("pw"))
	require.NoError(t, err)

	b := &stubBackend{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(9), GasUsed: 30000}}
	inv := contract.NewInvoker(contract.Config{
		URL:            "https://node.example",
		Dial:           func(context.Context, string) (contract.Backend, error) { return b, nil },
		Identity:       store,
		ConfirmTimeout: time.Second,
		PollInterval:   time.Millisecond,
		Logger:         zap.NewNop(),
	})
	req := &model.InvokeRequest{Contract: "BBI", Method: "buyTokens", Args: []string{addrOne}}

	resp, err := Invoke(context.Background(), inv, []byte("pw"), req, 5)
	assert.ErrorIs(t, err, contract.ErrSmartContractFailure)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, b.lastTx.Hash().Hex(), resp.Transaction.TxHash)
	assert.Equal(t, model.TransactionStateFailed, resp.Transaction.State)
	assert.Equal(t, int64(9), resp.Transaction.BlockNumber)
	assert.Equal(t, uint64(30000), resp.Transaction.GasUsed)

	// a reverted transaction still reached the node
	_, err = Invoke(context.Background(), inv, []byte("pw"), req, 5)
	assert.ErrorIs(t, err, ErrCooldown)
}

func TestInvokeUnknownContractListsKnown(t *testing.T) {
	inv := newInvoker(newStore(t), &stubBackend{})
	_, err := Invoke(context.Background(), inv, nil, &model.InvokeRequest{Contract: "NOPE", Method: "x"}, 0)
	assert.ErrorIs(t, err, contract.ErrUnknownContract)
	assert.Contains(t, err.Error(), "BBI")
}
