package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
)

var log = logger.NewNamed("client")

// EthClient is a JSON-RPC connection to an Ethereum node
type EthClient struct {
	*ethclient.Client

	mu      sync.Mutex
	chainID *big.Int
}

// Dial connects to rawURL and checks that the node answers eth_chainId within timeout.
// Every failure wraps contract.ErrProviderUnavailable.
func Dial(ctx context.Context, rawURL string, timeout time.Duration) (*EthClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrProviderUnavailable, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", contract.ErrProviderUnavailable, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", contract.ErrProviderUnavailable, rawURL)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rpcClient, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrProviderUnavailable, err)
	}

	chainID, err := rpcClient.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		log.Warn("chain id probe failed", zap.String("host", u.Host), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", contract.ErrProviderUnavailable, err)
	}

	log.Debug("connected", zap.String("host", u.Host), zap.String("chainId", chainID.String()))
	return &EthClient{Client: rpcClient, chainID: chainID}, nil
}

// ChainID returns the chain id seen at dial time
func (c *EthClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != nil {
		return new(big.Int).Set(c.chainID), nil
	}
	id, err := c.Client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	c.chainID = id
	return new(big.Int).Set(id), nil
}

// Dialer adapts Dial for contract.Invoker
func Dialer(timeout time.Duration) contract.Dialer {
	return func(ctx context.Context, rawURL string) (contract.Backend, error) {
		return Dial(ctx, rawURL, timeout)
	}
}
