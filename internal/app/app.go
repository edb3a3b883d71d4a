package app

import "idwallet/internal/domain"

// App exposes the services commands call.
type App struct {
	Wallets domain.WalletService
	Keys    domain.KeyOpsService
}

// New builds an App from a Wire.
func New(w *Wire) *App {
	return &App{
		Wallets: w.Service,
		Keys:    w.Service,
	}
}
