package contract

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	ucommon "github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
)

var log = logger.NewNamed("contract")

// Backend is the part of the JSON-RPC endpoint the invoker talks to
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Dialer opens a Backend for an endpoint URL
type Dialer func(ctx context.Context, rawURL string) (Backend, error)

// Identity is the signing identity of a session
type Identity interface {
	Address() (common.Address, error)
	Unlock(passphrase string) (*ecdsa.PrivateKey, error)
}

// CallOptions are the sender and gas settings attached to every call.
// Zero GasPrice / GasLimit let the node suggest / estimate for transactions.
type CallOptions struct {
	Sender   common.Address
	GasPrice *big.Int
	GasLimit uint64
	Value    *big.Int
}

// CallSpec is one fully described contract call
type CallSpec struct {
	Method  string
	Params  []any
	Options CallOptions

	method abi.Method
	data   []byte
}

// CallKind tells reads from transactions
type CallKind string

const (
	KindCall        CallKind = "call"
	KindTransaction CallKind = "transaction"
)

// CallResult is the outcome of Invoke. Reads fill Values/Display, transactions
// fill TxHash/State and, once mined, Receipt.
type CallResult struct {
	Kind    CallKind
	Method  string
	Values  []any
	Display string
	TxHash  common.Hash
	State   TxState
	Receipt *types.Receipt
}

// Config wires an Invoker
type Config struct {
	URL            string
	Dial           Dialer
	Registry       *Registry
	Identity       Identity
	Options        CallOptions
	ConfirmTimeout time.Duration // zero: return after broadcast
	PollInterval   time.Duration
	Logger         *zap.Logger
}

// Invoker signs and submits calls to registered contracts
type Invoker struct {
	url            string
	dial           Dialer
	registry       *Registry
	identity       Identity
	opts           CallOptions
	confirmTimeout time.Duration
	pollInterval   time.Duration
	log            *zap.Logger
}

// NewInvoker creates an Invoker. Registry defaults to DefaultRegistry.
func NewInvoker(cfg Config) *Invoker {
	inv := &Invoker{
		url:            cfg.URL,
		dial:           cfg.Dial,
		registry:       cfg.Registry,
		identity:       cfg.Identity,
		opts:           cfg.Options,
		confirmTimeout: cfg.ConfirmTimeout,
		pollInterval:   cfg.PollInterval,
		log:            cfg.Logger,
	}
	if inv.registry == nil {
		inv.registry = DefaultRegistry()
	}
	if inv.pollInterval <= 0 {
		inv.pollInterval = 2 * time.Second
	}
	if inv.log == nil {
		inv.log = log
	}
	return inv
}

// Registry returns the registry used to resolve contracts
func (i *Invoker) Registry() *Registry {
	return i.registry
}

// Invoke runs method on the contract of type t. Constant (view/pure) methods
// are executed as a call; all other methods are signed with the identity's key
// unlocked by passphrase and broadcast.
//
// When a mined transaction reverts, the result is returned together with
// ErrSmartContractFailure so the caller still learns the hash.
func (i *Invoker) Invoke(ctx context.Context, passphrase string, t ContractType, method string, params []any) (*CallResult, error) {
	return i.InvokeWithValue(ctx, passphrase, t, method, params, nil)
}

// InvokeWithValue is Invoke with value wei attached to this call only, replacing
// the configured value. A positive value requires a payable method.
func (i *Invoker) InvokeWithValue(ctx context.Context, passphrase string, t ContractType, method string, params []any, value *big.Int) (*CallResult, error) {
	backend, closeFn, err := i.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if i.identity == nil {
		return nil, fmt.Errorf("%w: no signing identity attached", ErrTransactionSigningFailure)
	}

	desc, err := i.registry.Resolve(t)
	if err != nil {
		return nil, err
	}

	cs, err := i.buildCallSpec(desc, method, params, value)
	if err != nil {
		return nil, err
	}

	if cs.method.IsConstant() {
		return i.call(ctx, backend, desc, cs)
	}
	return i.transact(ctx, backend, desc, cs, passphrase)
}

// Balance returns the wei balance of account
func (i *Invoker) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	backend, closeFn, err := i.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	bal, err := backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return bal, nil
}

func (i *Invoker) connect(ctx context.Context) (Backend, func(), error) {
	u, err := url.Parse(i.url)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, nil, fmt.Errorf("%w: invalid endpoint url %q", ErrProviderUnavailable, i.url)
	}
	if i.dial == nil {
		return nil, nil, fmt.Errorf("%w: no dialer configured", ErrProviderUnavailable)
	}

	backend, err := i.dial(ctx, i.url)
	if err != nil {
		i.log.Warn("endpoint unavailable", zap.String("host", u.Host), zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	closeFn := func() {}
	if c, ok := backend.(interface{ Close() }); ok {
		closeFn = c.Close
	}
	return backend, closeFn, nil
}

func (i *Invoker) buildCallSpec(desc *Descriptor, method string, params []any, value *big.Int) (*CallSpec, error) {
	m, ok := desc.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrInvalidMethod, desc.Type, method)
	}
	if len(params) != len(m.Inputs) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrInvalidMethod, m.Sig, len(m.Inputs), len(params))
	}

	data, err := desc.abi.Pack(method, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMethod, err)
	}

	opts := i.opts
	if value != nil {
		if value.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative value", ErrInvalidMethod)
		}
		if value.Sign() > 0 && !m.IsPayable() {
			return nil, fmt.Errorf("%w: %s is not payable", ErrInvalidMethod, m.Sig)
		}
		opts.Value = value
	}
	if (opts.Sender == common.Address{}) {
		if addr, err := i.identity.Address(); err == nil {
			opts.Sender = addr
		}
	}

	return &CallSpec{
		Method:  method,
		Params:  params,
		Options: opts,
		method:  m,
		data:    data,
	}, nil
}

// call executes a read-only call without broadcasting anything
func (i *Invoker) call(ctx context.Context, backend Backend, desc *Descriptor, cs *CallSpec) (*CallResult, error) {
	msg := ethereum.CallMsg{
		From:  cs.Options.Sender,
		To:    &desc.Address,
		Gas:   cs.Options.GasLimit,
		Value: cs.Options.Value,
		Data:  cs.data,
	}
	if cs.Options.GasPrice != nil && cs.Options.GasPrice.Sign() > 0 {
		msg.GasPrice = cs.Options.GasPrice
	}

	out, err := backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSmartContractFailure, err)
	}

	values, err := cs.method.Outputs.Unpack(out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s output: %w", ErrSmartContractFailure, cs.Method, err)
	}

	result := &CallResult{
		Kind:   KindCall,
		Method: cs.Method,
		Values: values,
	}
	if len(values) > 0 {
		if n, ok := toBigInt(values[0]); ok {
			result.Display = ucommon.WeiToEther(n)
		}
	}

	i.log.Debug("contract call",
		zap.String("contract", string(desc.Type)),
		zap.String("method", cs.Method),
		zap.String("display", result.Display))
	return result, nil
}

// toBigInt widens any integer return value to *big.Int
func toBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		return n, n != nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	}
	return nil, false
}
