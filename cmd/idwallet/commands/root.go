package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idwallet/internal/app"
	"idwallet/internal/domain"
)

var (
	home       string
	passphrase string
	walletFlag string
	kdfName    string
	verbose    bool
	appCtx     *app.App
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "idwallet",
		Short:        "Password-locked identity key wallet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = app.DefaultHome()
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			w, err := app.NewWire(app.Config{Home: home, KDF: kdfName, Verbose: verbose})
			if err != nil {
				return err
			}
			wire = w
			appCtx = app.New(w)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if wire != nil {
				_ = wire.Log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.idwallet)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "wallet passphrase")
	root.PersistentFlags().StringVarP(&walletFlag, "wallet", "w", "", "wallet id (default: the only wallet in home)")
	root.PersistentFlags().StringVar(&kdfName, "kdf", "sha3", "password KDF: sha3, argon2id or scrypt")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		initCmd(),
		walletsCmd(),
		keygenCmd(),
		importCmd(),
		keysCmd(),
		removeCmd(),
		signCmd(),
		verifyCmd(),
		encryptCmd(),
		decryptCmd(),
	)
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

// selectedWallet returns --wallet, or the only stored wallet when unset.
func selectedWallet() (domain.WalletID, error) {
	if walletFlag != "" {
		return domain.WalletID(walletFlag), nil
	}
	ids, err := appCtx.Wallets.ListWallets()
	if err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", errors.New("no wallet found. run init first")
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%d wallets found. choose one with --wallet", len(ids))
	}
}
