package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port                  string `envconfig:"PORT" default:"8080"`
	TxCooldown            int    `envconfig:"TX_COOLDOWN_MINUTES" default:"0"`
	KeystoreDir           string `envconfig:"KEYSTORE_DIR" default:"./KeyStore"`
	AccountName           string `envconfig:"ACCOUNT_NAME" default:"Account"`
	KeystoreLightKDF      bool   `envconfig:"KEYSTORE_LIGHT_KDF" default:"false"`
	RPCURL                string `envconfig:"ETH_RPC_URL" default:"https://mainnet.infura.io"`
	RPCTimeoutSeconds     int    `envconfig:"RPC_TIMEOUT_SECONDS" default:"10"`
	SenderAddress         string `envconfig:"SENDER_ADDRESS"`
	GasPriceWei           string `envconfig:"GAS_PRICE_WEI" default:"0"`
	GasLimit              uint64 `envconfig:"GAS_LIMIT" default:"0"`
	ConfirmTimeoutSeconds int    `envconfig:"CONFIRM_TIMEOUT_SECONDS" default:"0"`
	LogLevel              string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.RPCTimeoutSeconds <= 0 {
		return errors.New("RPC_TIMEOUT_SECONDS must be positive")
	}
	if c.TxCooldown < 0 || c.ConfirmTimeoutSeconds < 0 {
		return errors.New("TX_COOLDOWN_MINUTES and CONFIRM_TIMEOUT_SECONDS must not be negative")
	}
	cfg = c
	return nil
}

// Set replaces the global configuration. Used by tests and embedding callers.
func Set(c *Config) {
	cfg = c
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetTxCooldown returns cooldown between state-changing calls in minutes
func GetTxCooldown() int {
	return Get().TxCooldown
}

// RPCTimeout returns the endpoint dial/probe timeout
func (c *Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPCTimeoutSeconds) * time.Second
}

// ConfirmTimeout returns how long to wait for a receipt; zero disables waiting
func (c *Config) ConfirmTimeout() time.Duration {
	return time.Duration(c.ConfirmTimeoutSeconds) * time.Second
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter keystore password: ")
	if err != nil {
		return err
	}
	SetPasswordBytes(raw)
	clear(raw)
	return nil
}

// ReadPassword reads a non-empty password from the terminal without echo.
// Caller must zero the returned slice after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}

// SetPasswordBytes stores a copy of the password in memory.
func SetPasswordBytes(p []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(p))
	copy(passwordBytes, p)
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
