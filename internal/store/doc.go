// Package store provides file-based persistence for locked wallets.
//
// WalletFileStore implements the domain WalletStore interface. Each wallet
// is one JSON file holding its id and ciphertext; plaintext never reaches
// this package. Writes go through a temp file and an atomic rename, and all
// methods are concurrency-safe via internal locking. Files live under the
// user's configured home directory.
package store
