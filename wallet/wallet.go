// Package wallet is the service layer behind the HTTP handlers and the CLI:
// account management, balance and contract calls for one keystore slot.
package wallet

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
)

var log = logger.NewNamed("wallet")

// NewStore opens the configured keystore slot
func NewStore(cfg *config.Config) *keystore.AccountStore {
	return keystore.New(cfg.KeystoreDir,
		keystore.WithName(cfg.AccountName),
		keystore.WithLightKDF(cfg.KeystoreLightKDF))
}

// CallOptions builds sender and gas settings from configuration
func CallOptions(cfg *config.Config) (contract.CallOptions, error) {
	var opts contract.CallOptions

	if cfg.SenderAddress != "" {
		if !ethcommon.IsHexAddress(cfg.SenderAddress) {
			return opts, fmt.Errorf("SENDER_ADDRESS is not a valid address: %q", cfg.SenderAddress)
		}
		opts.Sender = ethcommon.HexToAddress(cfg.SenderAddress)
	}

	if cfg.GasPriceWei != "" {
		price, ok := new(big.Int).SetString(cfg.GasPriceWei, 10)
		if !ok || price.Sign() < 0 {
			return opts, fmt.Errorf("GAS_PRICE_WEI must be a non-negative integer: %q", cfg.GasPriceWei)
		}
		opts.GasPrice = price
	}

	opts.GasLimit = cfg.GasLimit
	return opts, nil
}

// NewInvoker wires a contract invoker to the configured endpoint with store as signer
func NewInvoker(cfg *config.Config, store *keystore.AccountStore) (*contract.Invoker, error) {
	opts, err := CallOptions(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("invoker configured",
		zap.String("account", store.Name()),
		zap.Duration("rpcTimeout", cfg.RPCTimeout()),
		zap.Duration("confirmTimeout", cfg.ConfirmTimeout()))

	return contract.NewInvoker(contract.Config{
		URL:            cfg.RPCURL,
		Dial:           client.Dialer(cfg.RPCTimeout()),
		Identity:       store,
		Options:        opts,
		ConfirmTimeout: cfg.ConfirmTimeout(),
	}), nil
}
