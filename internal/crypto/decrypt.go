package crypto

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

// ErrDecryptionFailure means the passphrase is wrong or the container is corrupted
var ErrDecryptionFailure = errors.New("could not decrypt key with given passphrase")

// DecryptKey opens a v3 keystore container
func DecryptKey(data []byte, passphrase string) (*ecdsa.PrivateKey, error) {
	key, err := keystore.DecryptKey(data, passphrase)
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, ErrDecryptionFailure
		}
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailure, err)
	}
	return key.PrivateKey, nil
}

// keyFileHeader is the part of a v3 container readable without the passphrase
type keyFileHeader struct {
	Address string `json:"address"`
	Version int    `json:"version"`
}

// ReadKeyAddress reads only the address from a keystore file (without decryption)
func ReadKeyAddress(filePath string) (common.Address, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return common.Address{}, errors.New("file does not exist")
		}
		return common.Address{}, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return common.Address{}, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read file: %w", err)
	}

	var header keyFileHeader
	if err := json.Unmarshal(fileData, &header); err != nil {
		return common.Address{}, fmt.Errorf("failed to unmarshal keystore file: %w", err)
	}
	if header.Version != 3 {
		return common.Address{}, fmt.Errorf("unsupported keystore version %d", header.Version)
	}
	if !common.IsHexAddress(header.Address) {
		return common.Address{}, fmt.Errorf("invalid address %q in keystore file", header.Address)
	}

	return common.HexToAddress(header.Address), nil
}
