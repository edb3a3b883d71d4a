package crypto

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"

	"idwallet/internal/util/memzero"
)

// X25519KeySize is the size of X25519 secrets and public keys.
const X25519KeySize = curve25519.ScalarSize

// x25519Scheme stores the secret as given; X25519 clamps internally.
type x25519Scheme struct{}

func (x25519Scheme) derive(secret []byte) ([]byte, []byte, error) {
	if len(secret) != X25519KeySize {
		return nil, nil, lengthError("x25519 secret", X25519KeySize, len(secret))
	}
	pub, err := curve25519.X25519(secret, curve25519.Basepoint)
	if err != nil {
		return nil, nil, cryptoError("x25519 base mult", err)
	}
	return pub, cloneBytes(secret), nil
}

func (s x25519Scheme) generate(rand io.Reader) ([]byte, []byte, error) {
	priv := make([]byte, X25519KeySize)
	defer memzero.Zero(priv)
	if _, err := io.ReadFull(rand, priv); err != nil {
		return nil, nil, cryptoError("x25519 secret", err)
	}
	clamp(priv)
	return s.derive(priv)
}

func (x25519Scheme) sign([]byte, []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: X25519 keys cannot sign", ErrWrongKeyType)
}

func (x25519Scheme) verify([]byte, []byte, []byte) (bool, error) {
	return false, fmt.Errorf("%w: X25519 keys cannot verify", ErrWrongKeyType)
}

func (x25519Scheme) seed(priv []byte) ([]byte, error) {
	if len(priv) != X25519KeySize {
		return nil, lengthError("x25519 secret", X25519KeySize, len(priv))
	}
	return cloneBytes(priv), nil
}

func (x25519Scheme) samePublic(a, b []byte) bool { return bytes.Equal(a, b) }

// dh computes the X25519 shared secret. Low-order peers are rejected.
func dh(priv, pub []byte) ([]byte, error) {
	if len(priv) != X25519KeySize {
		return nil, lengthError("x25519 secret", X25519KeySize, len(priv))
	}
	if len(pub) != X25519KeySize {
		return nil, lengthError("x25519 public key", X25519KeySize, len(pub))
	}
	return curve25519.X25519(priv, pub)
}

// clamp applies the RFC 7748 scalar clamping in place.
func clamp(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
