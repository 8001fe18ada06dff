// Offline keystore maintenance over the configured KEYSTORE_DIR.
// Usage:
//
//	go run ./cmd/keytool create
//	go run ./cmd/keytool import <private key>
//	go run ./cmd/keytool address
//	go run ./cmd/keytool export
//	go run ./cmd/keytool list
//
// ACCOUNT_NAME selects the slot.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/keystore"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
	"github.com/AlexZinkM/eth-wallet/wallet"
)

var errUsage = errors.New("usage: keytool create | import <private key> | address | export | list")

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// keep zap quiet unless asked; output goes to stdout
	if err := logger.SetLevel("warn"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := wallet.NewStore(config.Get())
	if err := run(os.Args[1:], store, config.ReadPassword, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readPasswordFunc prompts for a password; the returned slice is zeroed by the caller
type readPasswordFunc func(prompt string) ([]byte, error)

func run(args []string, store *keystore.AccountStore, readPassword readPasswordFunc, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "create":
		password, err := readPassword("New keystore password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		resp, err := wallet.GenerateAccount(store, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, resp.Address)

	case "import":
		if len(args) != 2 {
			return errUsage
		}
		password, err := readPassword("Keystore password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		resp, err := wallet.ImportAccount(store, args[1], password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, resp.Address)

	case "address":
		addr, err := store.Address()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, addr.Hex())

	case "export":
		password, err := readPassword("Keystore password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		key, err := store.PrivateKey(string(password))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, key)

	case "list":
		accounts, err := store.Accounts()
		if err != nil {
			return err
		}
		for _, a := range accounts {
			fmt.Fprintf(out, "%s\t%s\n", a.Name, a.Address.Hex())
		}

	default:
		return errUsage
	}
	return nil
}
