package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	ucommon "github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// ErrCooldown is returned while the pause between state-changing calls is running
var ErrCooldown = errors.New("cooldown active")

var (
	lastTxTime time.Time
	txMutex    sync.Mutex
)

// Invoke runs req against its contract. Read-only methods are free; state-changing
// ones are signed with password and rate limited by cooldownMinutes.
// req.Value (ether) is only accepted by payable methods. When a mined transaction
// reverts, the response is returned together with the error.
// password must be []byte for security (caller should zero it after use)
func Invoke(ctx context.Context, inv *contract.Invoker, password []byte, req *model.InvokeRequest, cooldownMinutes int) (*model.InvokeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrInvalidMethod, err)
	}
	t := contract.ContractType(req.Contract)

	method, err := inv.Registry().Method(t, req.Method)
	if err != nil {
		if errors.Is(err, contract.ErrUnknownContract) {
			return nil, fmt.Errorf("%w, known: %v", err, inv.Registry().Types())
		}
		return nil, err
	}
	params, err := contract.ParseArgs(method, req.Args)
	if err != nil {
		return nil, err
	}

	var value *big.Int
	if req.Value != "" {
		value, err = ucommon.EtherToWei(req.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: value: %v", contract.ErrInvalidMethod, err)
		}
		if value.Sign() > 0 && !method.IsPayable() {
			return nil, fmt.Errorf("%w: %s does not accept ether", contract.ErrInvalidMethod, req.Method)
		}
	}

	if method.IsConstant() {
		res, err := inv.Invoke(ctx, "", t, req.Method, params)
		if err != nil {
			return nil, err
		}
		return invokeResponse(req, res), nil
	}

	txMutex.Lock()
	defer txMutex.Unlock()

	if !lastTxTime.IsZero() {
		cooldownDuration := time.Duration(cooldownMinutes) * time.Minute
		if elapsed := time.Since(lastTxTime); elapsed < cooldownDuration {
			remaining := cooldownDuration - elapsed
			return nil, fmt.Errorf("%w, please wait %v", ErrCooldown, remaining.Round(time.Second))
		}
	}

	res, err := inv.InvokeWithValue(ctx, string(password), t, req.Method, params, value)
	if res != nil && res.TxHash != (ethcommon.Hash{}) {
		// anything that reached the node counts against the cooldown
		lastTxTime = time.Now()
	}
	if err != nil {
		if res != nil {
			// mined but reverted: the hash is still useful to the caller
			log.Warn("transaction failed", zap.String("hash", res.TxHash.Hex()), zap.Error(err))
			return invokeResponse(req, res), err
		}
		return nil, err
	}

	return invokeResponse(req, res), nil
}

func invokeResponse(req *model.InvokeRequest, res *contract.CallResult) *model.InvokeResponse {
	resp := &model.InvokeResponse{
		Contract: req.Contract,
		Method:   res.Method,
		Kind:     string(res.Kind),
		Display:  res.Display,
	}
	for _, v := range res.Values {
		resp.Values = append(resp.Values, formatValue(v))
	}

	if res.Kind == contract.KindTransaction {
		tx := &model.Transaction{
			TxHash: res.TxHash.Hex(),
			State:  model.TransactionState(res.State),
		}
		if res.Receipt != nil {
			if res.Receipt.BlockNumber != nil {
				tx.BlockNumber = res.Receipt.BlockNumber.Int64()
			}
			tx.GasUsed = res.Receipt.GasUsed
		}
		resp.Transaction = tx
	}
	return resp
}

// formatValue renders a decoded ABI value as text
func formatValue(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case ethcommon.Address:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	case string:
		return x
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return hexutil.Encode(b)
	}
	return fmt.Sprint(v)
}
