package app

import (
	"fmt"

	"go.uber.org/zap"

	"idwallet/internal/domain"
	walletsvc "idwallet/internal/services/wallet"
	"idwallet/internal/store"
	"idwallet/internal/wallet"
)

// Wire bundles the store, services, and logger for the CLI.
type Wire struct {
	Wallets domain.WalletStore
	Service *walletsvc.Service
	Log     *zap.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log := cfg.Logger
	if log == nil {
		var err error
		if log, err = NewLogger(cfg.Verbose); err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	kdf, err := wallet.KDFByName(cfg.KDF)
	if err != nil {
		return nil, err
	}

	home := cfg.Home
	if home == "" {
		home = DefaultHome()
	}

	// File-based store of locked wallets
	walletStore := store.NewWalletFileStore(home)

	// High-level service
	svc := walletsvc.New(walletStore, log, wallet.WithKDF(kdf))

	log.Debug("wired", zap.String("home", home), zap.String("kdf", kdf.Name()))
	return &Wire{
		Wallets: walletStore,
		Service: svc,
		Log:     log,
	}, nil
}
