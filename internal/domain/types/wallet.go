package types

// LockedWallet is the encrypted at-rest form of a wallet.
//
// Ciphertext is the AEAD-sealed wallet followed by the 24-byte nonce.
type LockedWallet struct {
	ID         WalletID `json:"id"`
	Ciphertext []byte   `json:"ciphertext"`
}

// KeySummary describes one key held by a wallet without exposing secrets.
type KeySummary struct {
	Reference   ContentRef  `json:"reference"`
	Type        KeyType     `json:"type"`
	Controller  []string    `json:"controller"`
	PublicKey   []byte      `json:"publicKey"`
	Fingerprint Fingerprint `json:"fingerprint"`
}
