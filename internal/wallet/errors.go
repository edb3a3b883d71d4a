package wallet

import (
	"errors"

	"idwallet/internal/crypto"
)

var (
	// ErrNoSuchReference is returned when a reference is not in the wallet.
	ErrNoSuchReference = errors.New("no such content reference")

	// ErrIncorrectContentType is returned when a reference names content
	// that is not key material.
	ErrIncorrectContentType = errors.New("content is not a key")

	// ErrReferenceExists is returned when inserting under a taken reference.
	ErrReferenceExists = errors.New("content reference already exists")

	// ErrInvalidContent is returned for content values the wallet cannot hold.
	ErrInvalidContent = errors.New("invalid content")

	// ErrEmptyPassword is returned by Lock for a zero-length password.
	ErrEmptyPassword = errors.New("empty password")

	// ErrDecryptionFailed is the only signal of a wrong password or a
	// corrupted blob. It is the same value as crypto.ErrDecryptionFailed.
	ErrDecryptionFailed = crypto.ErrDecryptionFailed

	// ErrEncoding is returned when decrypted bytes are not a valid wallet.
	ErrEncoding = errors.New("malformed wallet encoding")
)
