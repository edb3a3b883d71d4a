package interfaces

import domaintypes "idwallet/internal/domain/types"

// WalletStore persists locked wallets. It never sees plaintext.
type WalletStore interface {
	SaveWallet(w domaintypes.LockedWallet) error
	LoadWallet(id domaintypes.WalletID) (domaintypes.LockedWallet, error)
	ListWallets() ([]domaintypes.WalletID, error)
	DeleteWallet(id domaintypes.WalletID) error
}
