package types

// WalletID identifies a wallet in a store.
type WalletID string

// String returns the string form of the wallet id.
func (id WalletID) String() string { return string(id) }

// ContentRef is an opaque reference to one entry of a wallet.
type ContentRef string

// String returns the string form of the reference.
func (r ContentRef) String() string { return string(r) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
