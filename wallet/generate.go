package wallet

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// GenerateAccount creates a fresh key in the store's slot, overwriting any previous one.
// password must be []byte for security (caller should zero it after use)
func GenerateAccount(store *keystore.AccountStore, password []byte) (*model.AccountResponse, error) {
	addr, err := store.CreateAccount(string(password))
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return accountResponse(store.Name(), addr.Hex())
}

// ImportAccount stores privateKey (hex with optional 0x, or decimal) in the store's slot.
// password must be []byte for security (caller should zero it after use)
func ImportAccount(store *keystore.AccountStore, privateKey string, password []byte) (*model.AccountResponse, error) {
	addr, err := store.ImportAccount(privateKey, string(password))
	if err != nil {
		return nil, fmt.Errorf("failed to import account: %w", err)
	}
	return accountResponse(store.Name(), addr.Hex())
}

// GetAccount returns the stored account without decrypting it
func GetAccount(store *keystore.AccountStore) (*model.AccountResponse, error) {
	addr, err := store.Address()
	if err != nil {
		return nil, err
	}
	return accountResponse(store.Name(), addr.Hex())
}

func accountResponse(name, address string) (*model.AccountResponse, error) {
	qr, err := generateQRCode(address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return &model.AccountResponse{
		Name:    name,
		Address: address,
		QR:      qr,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
