package main

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/api"
	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
)

// @title        eth-wallet API
// @version      1.0
// @description  Local Ethereum account keystore and contract caller
// @BasePath     /
func main() {
	log := logger.NewNamed("main")

	if err := config.Init(); err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if err := logger.SetLevel(config.Get().LogLevel); err != nil {
		log.Fatal("invalid LOG_LEVEL", zap.Error(err))
	}

	if err := config.PromptForPassword(); err != nil {
		log.Error("failed to read password", zap.Error(err))
		os.Exit(1)
	}

	router, err := api.SetupRouter()
	if err != nil {
		log.Fatal("failed to set up router", zap.Error(err))
	}

	addr := ":" + config.GetPort()
	log.Info("server started", zap.String("addr", addr), zap.String("swagger", "http://localhost"+addr+"/swagger/index.html"))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
