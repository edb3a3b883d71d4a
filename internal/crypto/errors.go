package crypto

import (
	"errors"
	"fmt"

	"idwallet/internal/domain/types"
)

var (
	// ErrUnsupportedKeyType is returned when no implementation exists for a key type.
	ErrUnsupportedKeyType = types.ErrUnsupportedKeyType

	// ErrWrongKeyType is returned when the key type exists but cannot perform
	// the requested operation (e.g. signing with an X25519 key).
	ErrWrongKeyType = errors.New("operation not supported for key type")

	// ErrWrongKeyLength is returned when a key or signature does not have the
	// fixed size its algorithm expects.
	ErrWrongKeyLength = errors.New("wrong key or signature length")

	// ErrDecryptionFailed covers every authenticated-decryption failure.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyMismatch is returned when a private key does not derive the
	// public key it is stored with.
	ErrKeyMismatch = errors.New("private key does not match public key")

	// ErrCrypto wraps unanticipated failures from the underlying libraries.
	ErrCrypto = errors.New("crypto failure")
)

func lengthError(what string, want, got int) error {
	return fmt.Errorf("%w: %s must be %d bytes, got %d", ErrWrongKeyLength, what, want, got)
}

func cryptoError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCrypto, op, err)
}
