// Package keystore keeps encrypted account keys in a directory of v3 keystore
// files, one file per named slot.
package keystore

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
)

const (
	// DefaultName is the slot used when no name is given
	DefaultName = "Account"

	fileExt  = ".json"
	dirPerm  = 0700
	filePerm = 0600
)

// ErrNoAccount indicates the slot holds no resolvable account
var ErrNoAccount = errors.New("no account in keystore")

var log = logger.NewNamed("keystore")

// Account describes a stored slot without decrypting it
type Account struct {
	Name    string
	Address common.Address
	Path    string
}

// AccountStore manages the encrypted key in one named slot of a keystore directory.
// Other slots in the same directory are reachable through Named.
type AccountStore struct {
	dir   string
	name  string
	light bool
	log   *zap.Logger
}

// Option configures an AccountStore
type Option func(*AccountStore)

// WithName selects the slot (file name without extension)
func WithName(name string) Option {
	return func(s *AccountStore) { s.name = name }
}

// WithLightKDF uses the cheap scrypt parameters when encrypting
func WithLightKDF(light bool) Option {
	return func(s *AccountStore) { s.light = light }
}

// WithLogger replaces the package logger
func WithLogger(l *zap.Logger) Option {
	return func(s *AccountStore) { s.log = l }
}

// New creates a store rooted at dir. The directory is created on first use.
func New(dir string, opts ...Option) *AccountStore {
	s := &AccountStore{dir: dir, name: DefaultName, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Named returns a store for another slot of the same directory
func (s *AccountStore) Named(name string) *AccountStore {
	c := *s
	c.name = name
	return &c
}

// Name returns the slot name
func (s *AccountStore) Name() string {
	return s.name
}

// Dir returns the keystore directory
func (s *AccountStore) Dir() string {
	return s.dir
}

// Path returns the file backing the slot
func (s *AccountStore) Path() string {
	return filepath.Join(s.dir, s.name+fileExt)
}

// ensureDir creates the keystore directory if absent
func (s *AccountStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	return nil
}

// CreateAccount generates a new key, encrypts it under passphrase and writes it
// to the slot, replacing whatever was there.
func (s *AccountStore) CreateAccount(passphrase string) (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		s.log.Error("create account", zap.String("name", s.name), zap.Error(err))
		return common.Address{}, err
	}
	defer crypto.ZeroKey(key)

	addr, err := s.store(key, passphrase)
	if err != nil {
		s.log.Error("create account", zap.String("name", s.name), zap.Error(err))
		return common.Address{}, err
	}
	s.log.Info("account created", zap.String("name", s.name), zap.String("address", addr.Hex()))
	return addr, nil
}

// ImportAccount validates privateKey (decimal or hex, optional 0x prefix),
// encrypts it under passphrase and writes it to the slot.
func (s *AccountStore) ImportAccount(privateKey string, passphrase string) (common.Address, error) {
	raw, err := crypto.ParsePrivateKey(privateKey)
	if err != nil {
		s.log.Warn("import account: rejected key", zap.String("name", s.name), zap.Error(err))
		return common.Address{}, err
	}
	defer clear(raw)

	key, err := crypto.KeyFromBytes(raw)
	if err != nil {
		return common.Address{}, err
	}
	defer crypto.ZeroKey(key)

	addr, err := s.store(key, passphrase)
	if err != nil {
		s.log.Error("import account", zap.String("name", s.name), zap.Error(err))
		return common.Address{}, err
	}
	s.log.Info("account imported", zap.String("name", s.name), zap.String("address", addr.Hex()))
	return addr, nil
}

func (s *AccountStore) store(key *ecdsa.PrivateKey, passphrase string) (common.Address, error) {
	data, err := crypto.EncryptKey(key, passphrase, s.light)
	if err != nil {
		return common.Address{}, err
	}
	if err := s.ensureDir(); err != nil {
		return common.Address{}, err
	}
	if err := writeFileAtomic(s.Path(), data); err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyAddress(key), nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers see either the old or the new container.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Chmod(filePerm); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace keystore file: %w", err)
	}
	return nil
}

// HasAccount reports whether this slot resolves to an address, i.e. Address succeeds
func (s *AccountStore) HasAccount() bool {
	_, err := s.Address()
	return err == nil
}

// Address returns the slot's address without decrypting the key
func (s *AccountStore) Address() (common.Address, error) {
	if err := s.ensureDir(); err != nil {
		return common.Address{}, err
	}
	addr, err := crypto.ReadKeyAddress(s.Path())
	if err != nil {
		s.log.Debug("address lookup failed", zap.String("name", s.name), zap.Error(err))
		return common.Address{}, fmt.Errorf("%w: %s", ErrNoAccount, s.name)
	}
	return addr, nil
}

// Unlock decrypts the slot's key. Caller should crypto.ZeroKey it after use.
func (s *AccountStore) Unlock(passphrase string) (*ecdsa.PrivateKey, error) {
	if _, err := s.Address(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore file: %w", err)
	}
	key, err := crypto.DecryptKey(data, passphrase)
	if err != nil {
		s.log.Warn("unlock failed", zap.String("name", s.name), zap.Error(err))
		return nil, err
	}
	return key, nil
}

// PrivateKey decrypts the slot and returns the key as 64 hex characters
func (s *AccountStore) PrivateKey(passphrase string) (string, error) {
	key, err := s.Unlock(passphrase)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroKey(key)

	raw := ethcrypto.FromECDSA(key)
	defer clear(raw)
	return hex.EncodeToString(raw), nil
}

// Accounts lists every slot in the directory that resolves to an address
func (s *AccountStore) Accounts() ([]Account, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore directory: %w", err)
	}

	accounts := make([]Account, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
			continue
		}
		path := filepath.Join(s.dir, name)
		addr, err := crypto.ReadKeyAddress(path)
		if err != nil {
			s.log.Debug("skipping unreadable keystore file", zap.String("path", path), zap.Error(err))
			continue
		}
		accounts = append(accounts, Account{
			Name:    strings.TrimSuffix(name, fileExt),
			Address: addr,
			Path:    path,
		})
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}
