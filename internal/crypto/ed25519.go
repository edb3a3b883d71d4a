package crypto

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"idwallet/internal/util/memzero"
)

// ed25519Scheme keeps the 64-byte seed‖public form as the private key.
type ed25519Scheme struct{}

func (ed25519Scheme) derive(secret []byte) ([]byte, []byte, error) {
	if len(secret) != ed25519.SeedSize {
		return nil, nil, lengthError("ed25519 seed", ed25519.SeedSize, len(secret))
	}
	priv := ed25519.NewKeyFromSeed(secret)
	pub := priv.Public().(ed25519.PublicKey)
	return cloneBytes(pub), []byte(priv), nil
}

func (s ed25519Scheme) generate(rand io.Reader) ([]byte, []byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	defer memzero.Zero(seed)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, cryptoError("ed25519 seed", err)
	}
	return s.derive(seed)
}

func (ed25519Scheme) sign(priv, data []byte) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, lengthError("ed25519 private key", ed25519.PrivateKeySize, len(priv))
	}
	return ed25519.Sign(ed25519.PrivateKey(priv), data), nil
}

func (ed25519Scheme) verify(pub, data, sig []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, lengthError("ed25519 public key", ed25519.PublicKeySize, len(pub))
	}
	if len(sig) != ed25519.SignatureSize {
		return false, lengthError("ed25519 signature", ed25519.SignatureSize, len(sig))
	}
	return ed25519.Verify(ed25519.PublicKey(pub), data, sig), nil
}

func (ed25519Scheme) seed(priv []byte) ([]byte, error) {
	switch len(priv) {
	case ed25519.SeedSize:
		return cloneBytes(priv), nil
	case ed25519.PrivateKeySize:
		return cloneBytes(priv[:ed25519.SeedSize]), nil
	default:
		return nil, lengthError("ed25519 private key", ed25519.PrivateKeySize, len(priv))
	}
}

func (ed25519Scheme) samePublic(a, b []byte) bool { return bytes.Equal(a, b) }
