package interfaces

import domaintypes "idwallet/internal/domain/types"

// WalletService creates wallets and manages the keys inside them. Every
// call unlocks the wallet with passphrase and locks it again before
// returning.
type WalletService interface {
	CreateWallet(passphrase string) (domaintypes.WalletID, error)
	ListWallets() ([]domaintypes.WalletID, error)

	GenerateKey(
		id domaintypes.WalletID,
		passphrase string,
		kt domaintypes.KeyType,
		controller []string,
	) (domaintypes.KeySummary, error)
	ImportKey(
		id domaintypes.WalletID,
		passphrase string,
		kt domaintypes.KeyType,
		secret []byte,
		controller []string,
	) (domaintypes.KeySummary, error)
	ListKeys(id domaintypes.WalletID, passphrase string) ([]domaintypes.KeySummary, error)
	RemoveKey(id domaintypes.WalletID, passphrase string, ref domaintypes.ContentRef) error
	DeleteWallet(id domaintypes.WalletID, passphrase string) error
}

// KeyOpsService uses a stored key without exposing it.
type KeyOpsService interface {
	Sign(
		id domaintypes.WalletID,
		passphrase string,
		ref domaintypes.ContentRef,
		data []byte,
	) ([]byte, error)
	Verify(
		id domaintypes.WalletID,
		passphrase string,
		ref domaintypes.ContentRef,
		data, sig []byte,
	) (bool, error)
	Encrypt(
		id domaintypes.WalletID,
		passphrase string,
		ref domaintypes.ContentRef,
		plaintext []byte,
	) ([]byte, error)
	Decrypt(
		id domaintypes.WalletID,
		passphrase string,
		ref domaintypes.ContentRef,
		box []byte,
	) ([]byte, error)
}
