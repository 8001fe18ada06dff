package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/AlexZinkM/eth-wallet/docs"
	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/handler"
	"github.com/AlexZinkM/eth-wallet/wallet"
)

// SetupRouter sets up router with handlers built from the global configuration
func SetupRouter() (http.Handler, error) {
	cfg := config.Get()

	store := wallet.NewStore(cfg)
	invoker, err := wallet.NewInvoker(cfg, store)
	if err != nil {
		return nil, err
	}

	return NewRouter(handler.NewWalletHandler(store, invoker, cfg.TxCooldown)), nil
}

// NewRouter registers the wallet endpoints on a new mux
func NewRouter(walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Account endpoints
	mux.HandleFunc("/account", walletHandler.Account)
	mux.HandleFunc("/account/generate", walletHandler.Generate)
	mux.HandleFunc("/account/import", walletHandler.Import)
	mux.HandleFunc("/account/balance", walletHandler.Balance)

	// Contract endpoints
	mux.HandleFunc("/contract/invoke", walletHandler.Invoke)

	return mux
}
