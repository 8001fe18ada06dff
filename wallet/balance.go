package wallet

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// GetBalance gets the ether balance of the stored account
func GetBalance(ctx context.Context, inv *contract.Invoker, store *keystore.AccountStore) (*model.BalanceResponse, error) {
	addr, err := store.Address()
	if err != nil {
		return nil, err
	}

	wei, err := inv.Balance(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &model.BalanceResponse{
		Address: addr.Hex(),
		Wei:     wei.String(),
		Ether:   common.WeiToEther(wei),
	}, nil
}
