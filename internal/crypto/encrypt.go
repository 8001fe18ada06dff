package crypto

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// scrypt parameters for the v3 keystore container
//
// Standard: N=2^18, P=1 (~256MB RAM, about a second per unlock). Same cost the
// chain's reference clients use, so files stay interchangeable.
//
// Light: N=2^12, P=6 (~4MB RAM). For tests and hosts with tight memory limits.
const (
	StandardScryptN = keystore.StandardScryptN
	StandardScryptP = keystore.StandardScryptP
	LightScryptN    = keystore.LightScryptN
	LightScryptP    = keystore.LightScryptP
)

// GenerateKey creates a new random secp256k1 key
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// KeyFromBytes turns 32 raw bytes into a signing key
func KeyFromBytes(raw []byte) (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	return key, nil
}

// PubkeyAddress derives the chain address of the key
func PubkeyAddress(key *ecdsa.PrivateKey) common.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}

// EncryptKey encrypts the key under passphrase and returns the v3 keystore JSON
// (scrypt KDF, aes-128-ctr cipher, keccak MAC, derived address).
func EncryptKey(key *ecdsa.PrivateKey, passphrase string, light bool) ([]byte, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key id: %w", err)
	}

	scryptN, scryptP := StandardScryptN, StandardScryptP
	if light {
		scryptN, scryptP = LightScryptN, LightScryptP
	}

	data, err := keystore.EncryptKey(&keystore.Key{
		Id:         id,
		Address:    PubkeyAddress(key),
		PrivateKey: key,
	}, passphrase, scryptN, scryptP)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt key: %w", err)
	}
	return data, nil
}

// ZeroKey wipes the private scalar from memory
func ZeroKey(key *ecdsa.PrivateKey) {
	if key == nil || key.D == nil {
		return
	}
	b := key.D.Bits()
	clear(b)
}
