package crypto

import (
	"crypto/cipher"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"idwallet/internal/util/memzero"
)

// SealedBoxOverhead is the number of bytes SealBox adds to a plaintext:
// ephemeral public key, nonce and Poly1305 tag.
const SealedBoxOverhead = X25519KeySize + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

var sealedBoxInfo = []byte("idwallet sealed box v1")

// SealBox encrypts plaintext anonymously to an X25519 public key.
//
// Layout: ephemeralPub(32) ‖ nonce(24) ‖ XChaCha20-Poly1305 ciphertext. The
// AEAD key is HKDF-SHA256 over the shared secret, salted with both public
// keys; the ephemeral public key is bound as associated data.
func SealBox(recipient, plaintext []byte, rand io.Reader) ([]byte, error) {
	if len(recipient) != X25519KeySize {
		return nil, lengthError("x25519 public key", X25519KeySize, len(recipient))
	}
	ephPriv := make([]byte, X25519KeySize)
	defer memzero.Zero(ephPriv)
	if _, err := io.ReadFull(rand, ephPriv); err != nil {
		return nil, cryptoError("sealed box ephemeral", err)
	}
	clamp(ephPriv)
	ephPub, err := curve25519.X25519(ephPriv, curve25519.Basepoint)
	if err != nil {
		return nil, cryptoError("sealed box ephemeral", err)
	}
	shared, err := dh(ephPriv, recipient)
	if err != nil {
		return nil, cryptoError("sealed box agreement", err)
	}
	defer memzero.Zero(shared)

	aead, err := sealedBoxAEAD(shared, ephPub, recipient)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, SealedBoxOverhead+len(plaintext))
	out = append(out, ephPub...)
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, cryptoError("sealed box nonce", err)
	}
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, ephPub), nil
}

// OpenBox reverses SealBox. Any framing or authentication problem yields
// ErrDecryptionFailed.
func OpenBox(recipientPriv, recipientPub, box []byte) ([]byte, error) {
	if len(recipientPriv) != X25519KeySize {
		return nil, lengthError("x25519 secret", X25519KeySize, len(recipientPriv))
	}
	if len(box) < SealedBoxOverhead {
		return nil, ErrDecryptionFailed
	}
	ephPub := box[:X25519KeySize]
	nonce := box[X25519KeySize : X25519KeySize+chacha20poly1305.NonceSizeX]
	ct := box[X25519KeySize+chacha20poly1305.NonceSizeX:]

	shared, err := dh(recipientPriv, ephPub)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer memzero.Zero(shared)

	aead, err := sealedBoxAEAD(shared, ephPub, recipientPub)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce, ct, ephPub)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return pt, nil
}

func sealedBoxAEAD(shared, ephPub, recipientPub []byte) (cipher.AEAD, error) {
	salt := make([]byte, 0, 2*X25519KeySize)
	salt = append(salt, ephPub...)
	salt = append(salt, recipientPub...)
	key := make([]byte, chacha20poly1305.KeySize)
	defer memzero.Zero(key)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, sealedBoxInfo), key); err != nil {
		return nil, cryptoError("sealed box kdf", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, cryptoError("sealed box aead", err)
	}
	return aead, nil
}
