package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"io"

	"idwallet/internal/domain/types"
	"idwallet/internal/util/memzero"
)

// KeyPair holds a private key together with its public description. The
// private half never leaves through String or JSON encoding; use
// ExportRecord for persistence.
type KeyPair struct {
	public  PublicKeyInfo
	private []byte
}

// NewKeyPair derives a key pair of type kt from secret.
//
// Ed25519 takes a 32-byte seed; secp256k1 takes a 32-byte scalar; X25519 and
// BLS take a 32-byte secret. The caller keeps ownership of secret.
func NewKeyPair(kt types.KeyType, secret []byte) (*KeyPair, error) {
	s, err := schemeFor(kt)
	if err != nil {
		return nil, err
	}
	pub, priv, err := s.derive(secret)
	if err != nil {
		return nil, err
	}
	return &KeyPair{public: NewPublicKeyInfo(kt, pub), private: priv}, nil
}

// RandomKeyPair generates a fresh key pair from crypto/rand.
func RandomKeyPair(kt types.KeyType) (*KeyPair, error) {
	return RandomKeyPairWithReader(kt, rand.Reader)
}

// RandomKeyPairWithReader generates a key pair from rand.
func RandomKeyPairWithReader(kt types.KeyType, rand io.Reader) (*KeyPair, error) {
	s, err := schemeFor(kt)
	if err != nil {
		return nil, err
	}
	pub, priv, err := s.generate(rand)
	if err != nil {
		return nil, err
	}
	return &KeyPair{public: NewPublicKeyInfo(kt, pub), private: priv}, nil
}

// Type returns the key type.
func (k *KeyPair) Type() types.KeyType { return k.public.KeyType }

// PublicKey returns a copy of the public description.
func (k *KeyPair) PublicKey() PublicKeyInfo {
	return k.public.WithController(k.public.Controller)
}

// WithController returns a copy of k with a new controller list.
func (k *KeyPair) WithController(controller []string) *KeyPair {
	return &KeyPair{public: k.public.WithController(controller), private: cloneBytes(k.private)}
}

// Sign signs data. Key types without signatures return ErrWrongKeyType.
func (k *KeyPair) Sign(data []byte) ([]byte, error) {
	s, err := schemeFor(k.public.KeyType)
	if err != nil {
		return nil, err
	}
	return s.sign(k.private, data)
}

// Verify checks sig over data against the public half.
func (k *KeyPair) Verify(data, sig []byte) (bool, error) {
	return k.public.Verify(data, sig)
}

// Decrypt opens a box produced by PublicKeyInfo.Encrypt.
func (k *KeyPair) Decrypt(box []byte) ([]byte, error) {
	if err := requireAgreement(k.public.KeyType); err != nil {
		return nil, err
	}
	return OpenBox(k.private, k.public.PublicKey, box)
}

// Equal reports whether k and o hold the same key material and metadata.
func (k *KeyPair) Equal(o *KeyPair) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.public.Equal(o.public) && subtle.ConstantTimeCompare(k.private, o.private) == 1
}

// Wipe zeroes the private key. The pair is unusable afterwards.
func (k *KeyPair) Wipe() {
	memzero.Zero(k.private)
	k.private = nil
}

// String prints the type and public fingerprint only.
func (k *KeyPair) String() string { return k.public.String() }

// GoString keeps %#v from printing the private key.
func (k *KeyPair) GoString() string { return "crypto.KeyPair{" + k.public.String() + "}" }

// MarshalJSON encodes the public half only.
func (k *KeyPair) MarshalJSON() ([]byte, error) { return json.Marshal(k.public) }
