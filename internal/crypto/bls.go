package crypto

import (
	"bytes"
	"io"

	"github.com/cloudflare/circl/sign/bls"

	"idwallet/internal/util/memzero"
)

const (
	blsSecretSize = 32
	blsG1Size     = 48
	blsG2Size     = 96
)

var blsKeyGenSalt = []byte("BLS-SIG-KEYGEN-SALT-")

// blsScheme covers both BLS12-381 variants. K selects the group holding the
// public key; signatures live in the other group.
type blsScheme[K bls.KeyGroup] struct {
	pubSize int
	sigSize int
}

func (s blsScheme[K]) derive(secret []byte) ([]byte, []byte, error) {
	sk, err := s.privateKey(secret)
	if err != nil {
		return nil, nil, err
	}
	pub, err := sk.PublicKey().MarshalBinary()
	if err != nil {
		return nil, nil, cryptoError("bls public key", err)
	}
	return pub, cloneBytes(secret), nil
}

func (s blsScheme[K]) generate(rand io.Reader) ([]byte, []byte, error) {
	ikm := make([]byte, blsSecretSize)
	defer memzero.Zero(ikm)
	if _, err := io.ReadFull(rand, ikm); err != nil {
		return nil, nil, cryptoError("bls ikm", err)
	}
	sk, err := bls.KeyGen[K](ikm, blsKeyGenSalt, nil)
	if err != nil {
		return nil, nil, cryptoError("bls keygen", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, cryptoError("bls private key", err)
	}
	pub, err := sk.PublicKey().MarshalBinary()
	if err != nil {
		memzero.Zero(priv)
		return nil, nil, cryptoError("bls public key", err)
	}
	return pub, priv, nil
}

func (s blsScheme[K]) sign(priv, data []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return bls.Sign(sk, data), nil
}

func (s blsScheme[K]) verify(pub, data, sig []byte) (bool, error) {
	if len(pub) != s.pubSize {
		return false, lengthError("bls public key", s.pubSize, len(pub))
	}
	if len(sig) != s.sigSize {
		return false, lengthError("bls signature", s.sigSize, len(sig))
	}
	var pk bls.PublicKey[K]
	if err := pk.UnmarshalBinary(pub); err != nil {
		return false, cryptoError("bls public key", err)
	}
	return bls.Verify(&pk, data, sig), nil
}

func (blsScheme[K]) seed(priv []byte) ([]byte, error) {
	if len(priv) != blsSecretSize {
		return nil, lengthError("bls secret", blsSecretSize, len(priv))
	}
	return cloneBytes(priv), nil
}

// samePublic relies on compressed point encodings being canonical.
func (blsScheme[K]) samePublic(a, b []byte) bool {
	var pk bls.PublicKey[K]
	if pk.UnmarshalBinary(a) != nil {
		return false
	}
	return bytes.Equal(a, b)
}

func (blsScheme[K]) privateKey(secret []byte) (*bls.PrivateKey[K], error) {
	if len(secret) != blsSecretSize {
		return nil, lengthError("bls secret", blsSecretSize, len(secret))
	}
	sk := new(bls.PrivateKey[K])
	if err := sk.UnmarshalBinary(secret); err != nil {
		return nil, cryptoError("bls secret", err)
	}
	return sk, nil
}
