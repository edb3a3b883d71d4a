package wallet

import (
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"idwallet/internal/domain/types"
	"idwallet/internal/util/memzero"
)

// NonceSize is the length of the nonce trailing a locked wallet ciphertext.
const NonceSize = chacha20poly1305.NonceSizeX

// Lock encrypts the wallet under password.
//
// The result's ciphertext is XChaCha20-Poly1305(key, nonce, encoding) ‖
// nonce, with key = KDF(password). The wallet itself stays unlocked; call
// Close to wipe it.
func (u *Unlocked) Lock(password []byte, opts ...Option) (types.LockedWallet, error) {
	if len(password) == 0 {
		return types.LockedWallet{}, ErrEmptyPassword
	}
	o := buildOptions(opts)

	u.mu.Lock()
	defer u.mu.Unlock()

	var plaintext, key []byte
	defer func() { memzero.ZeroAll(plaintext, key) }()

	plaintext, err := u.encode()
	if err != nil {
		return types.LockedWallet{}, err
	}
	key, err = o.kdf.DeriveKey(password, kdfSalt(u.id))
	if err != nil {
		return types.LockedWallet{}, fmt.Errorf("derive wallet key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return types.LockedWallet{}, fmt.Errorf("wallet cipher: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(o.rand, nonce); err != nil {
		return types.LockedWallet{}, fmt.Errorf("wallet nonce: %w", err)
	}
	ct := make([]byte, 0, len(plaintext)+aead.Overhead()+NonceSize)
	ct = aead.Seal(ct, nonce, plaintext, nil)
	ct = append(ct, nonce...)
	return types.LockedWallet{ID: types.WalletID(u.id), Ciphertext: ct}, nil
}

// Unlock decrypts locked with password. A wrong password and a tampered blob
// both yield ErrDecryptionFailed. locked is never modified.
func Unlock(locked types.LockedWallet, password []byte, opts ...Option) (*Unlocked, error) {
	o := buildOptions(opts)

	ct := locked.Ciphertext
	if len(ct) < NonceSize+chacha20poly1305.Overhead {
		return nil, ErrDecryptionFailed
	}
	split := len(ct) - NonceSize
	sealed, nonce := ct[:split], ct[split:]

	key, err := o.kdf.DeriveKey(password, kdfSalt(locked.ID.String()))
	if err != nil {
		return nil, fmt.Errorf("derive wallet key: %w", err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("wallet cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer memzero.Zero(plaintext)

	u, err := decode(plaintext)
	if err != nil {
		return nil, err
	}
	if locked.ID != "" && types.WalletID(u.id) != locked.ID {
		u.Close()
		return nil, fmt.Errorf("%w: blob id %q does not match wallet id %q", ErrEncoding, locked.ID, u.id)
	}
	return u, nil
}
