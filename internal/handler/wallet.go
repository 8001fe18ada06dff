package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/contract"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
	"github.com/AlexZinkM/eth-wallet/internal/model"
	"github.com/AlexZinkM/eth-wallet/wallet"
)

var log = logger.NewNamed("handler")

// WalletHandler holds the account slot and invoker behind the HTTP endpoints
type WalletHandler struct {
	store           *keystore.AccountStore
	invoker         *contract.Invoker
	cooldownMinutes int
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(store *keystore.AccountStore, invoker *contract.Invoker, cooldownMinutes int) *WalletHandler {
	return &WalletHandler{
		store:           store,
		invoker:         invoker,
		cooldownMinutes: cooldownMinutes,
	}
}

// Generate handles POST /account/generate
// @Summary      Generate new account
// @Description  Generates a new key, encrypts it into the keystore slot and returns its address
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.AccountResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /account/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	defer clear(passwordBytes)

	resp, err := wallet.GenerateAccount(h.store, passwordBytes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /account/import
// @Summary      Import private key
// @Description  Encrypts the given private key (64 hex chars, optional 0x) into the keystore slot
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Private key"
// @Success      200      {object}  model.AccountResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /account/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}

	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	defer clear(passwordBytes)

	resp, err := wallet.ImportAccount(h.store, req.PrivateKey, passwordBytes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Account handles GET /account
// @Summary      Get account
// @Description  Returns the address stored in the keystore slot and its QR code
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.AccountResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /account [get]
func (h *WalletHandler) Account(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := wallet.GetAccount(h.store)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Balance handles GET /account/balance
// @Summary      Get account balance
// @Description  Gets the ether balance of the stored account
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /account/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := wallet.GetBalance(r.Context(), h.invoker, h.store)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Invoke handles POST /contract/invoke
// @Summary      Invoke contract method
// @Description  Calls a view method or signs and broadcasts a transaction to a bundled contract
// @Tags         contract
// @Accept       json
// @Produce      json
// @Param        request  body      model.InvokeRequest  true  "Contract call"
// @Success      200      {object}  model.InvokeResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /contract/invoke [post]
func (h *WalletHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}

	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	defer clear(passwordBytes)

	resp, err := wallet.Invoke(r.Context(), h.invoker, passwordBytes, &req, h.cooldownMinutes)
	if err != nil {
		var tx *model.Transaction
		if resp != nil {
			tx = resp.Transaction
		}
		writeTransactionError(w, err, tx)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorKind struct {
	target error
	status int
	code   string
}

// checked in order; the first match wins
var errorKinds = []errorKind{
	{crypto.ErrInvalidPrivateKey, http.StatusBadRequest, model.CodeInvalidPrivateKey},
	{crypto.ErrDecryptionFailure, http.StatusUnauthorized, model.CodeDecryptionFailure},
	{keystore.ErrNoAccount, http.StatusNotFound, model.CodeNoAccount},
	{wallet.ErrCooldown, http.StatusTooManyRequests, model.CodeCooldown},
	{contract.ErrProviderUnavailable, http.StatusBadGateway, model.CodeProviderUnavailable},
	{contract.ErrUnknownContract, http.StatusBadRequest, model.CodeContractResolution},
	{contract.ErrContractResolution, http.StatusBadRequest, model.CodeContractResolution},
	{contract.ErrInvalidMethod, http.StatusBadRequest, model.CodeInvalidMethod},
	{contract.ErrSmartContractFailure, http.StatusBadGateway, model.CodeSmartContract},
	{contract.ErrTransactionSigningFailure, http.StatusInternalServerError, model.CodeSigning},
	{contract.ErrTXHashReceiveFailure, http.StatusBadGateway, model.CodeTxHash},
}

// statusFor maps a service error to its HTTP status and error code
func statusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, model.CodeInternal
}

func writeServiceError(w http.ResponseWriter, err error) {
	writeTransactionError(w, err, nil)
}

func writeTransactionError(w http.ResponseWriter, err error, tx *model.Transaction) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("code", code), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code, Transaction: tx})
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
