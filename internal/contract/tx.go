package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/crypto"
)

// TxState is the lifecycle stage of a state-changing call
type TxState string

const (
	TxBuilt     TxState = "built"
	TxSigned    TxState = "signed"
	TxBroadcast TxState = "broadcast"
	TxConfirmed TxState = "confirmed"
	TxFailed    TxState = "failed"
)

var txTransitions = map[TxState][]TxState{
	"":          {TxBuilt, TxFailed},
	TxBuilt:     {TxSigned, TxFailed},
	TxSigned:    {TxBroadcast, TxFailed},
	TxBroadcast: {TxConfirmed, TxFailed},
}

// CanTransition reports whether a transaction may move from one state to another
func CanTransition(from, to TxState) bool {
	for _, s := range txTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// txFlow tracks one transaction through its states
type txFlow struct {
	result *CallResult
	log    *zap.Logger
}

func (f *txFlow) advance(to TxState) {
	if !CanTransition(f.result.State, to) {
		// programming error in transact
		panic(fmt.Sprintf("illegal transaction transition %q -> %q", f.result.State, to))
	}
	f.log.Debug("transaction state",
		zap.String("method", f.result.Method),
		zap.String("from", string(f.result.State)),
		zap.String("to", string(to)))
	f.result.State = to
}

func (f *txFlow) fail(kind error, err error) error {
	f.advance(TxFailed)
	return fmt.Errorf("%w: %w", kind, err)
}

// transact builds, signs, broadcasts and optionally waits for a transaction
func (i *Invoker) transact(ctx context.Context, backend Backend, desc *Descriptor, cs *CallSpec, passphrase string) (*CallResult, error) {
	flow := &txFlow{
		result: &CallResult{Kind: KindTransaction, Method: cs.Method},
		log:    i.log,
	}

	from, err := i.identity.Address()
	if err != nil {
		return nil, flow.fail(ErrTransactionSigningFailure, err)
	}

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, flow.fail(ErrSmartContractFailure, fmt.Errorf("fetch nonce: %w", err))
	}

	gasPrice := cs.Options.GasPrice
	if gasPrice == nil || gasPrice.Sign() == 0 {
		gasPrice, err = backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, flow.fail(ErrSmartContractFailure, fmt.Errorf("suggest gas price: %w", err))
		}
	}

	value := cs.Options.Value
	if value == nil {
		value = new(big.Int)
	}

	gasLimit := cs.Options.GasLimit
	if gasLimit == 0 {
		gasLimit, err = backend.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			To:       &desc.Address,
			GasPrice: gasPrice,
			Value:    value,
			Data:     cs.data,
		})
		if err != nil {
			return nil, flow.fail(ErrSmartContractFailure, fmt.Errorf("estimate gas: %w", err))
		}
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, flow.fail(ErrSmartContractFailure, fmt.Errorf("chain id: %w", err))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &desc.Address,
		Value:    value,
		Data:     cs.data,
	})
	flow.advance(TxBuilt)

	key, err := i.identity.Unlock(passphrase)
	if err != nil {
		return nil, flow.fail(ErrTransactionSigningFailure, err)
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	crypto.ZeroKey(key)
	if err != nil {
		return nil, flow.fail(ErrTransactionSigningFailure, err)
	}
	flow.result.TxHash = signed.Hash()
	flow.advance(TxSigned)

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, flow.fail(ErrTXHashReceiveFailure, err)
	}
	flow.advance(TxBroadcast)

	i.log.Info("transaction broadcast",
		zap.String("contract", string(desc.Type)),
		zap.String("method", cs.Method),
		zap.String("from", from.Hex()),
		zap.Uint64("nonce", nonce),
		zap.String("hash", signed.Hash().Hex()))

	if i.confirmTimeout <= 0 {
		return flow.result, nil
	}

	receipt, err := i.waitReceipt(ctx, backend, signed.Hash())
	if err != nil {
		// still pending is not a failure of the transaction
		i.log.Warn("receipt not available", zap.String("hash", signed.Hash().Hex()), zap.Error(err))
		return flow.result, nil
	}
	flow.result.Receipt = receipt

	if receipt.Status != types.ReceiptStatusSuccessful {
		return flow.result, flow.fail(ErrSmartContractFailure,
			fmt.Errorf("transaction %s reverted in block %s", signed.Hash().Hex(), receipt.BlockNumber))
	}
	flow.advance(TxConfirmed)
	return flow.result, nil
}

// waitReceipt polls for the receipt until it shows up or confirmTimeout passes
func (i *Invoker) waitReceipt(ctx context.Context, backend Backend, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, i.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(i.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
