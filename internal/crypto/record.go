package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"idwallet/internal/util/memzero"
)

// KeyPairRecord is the persisted form of a KeyPair, including the private
// key. Its JSON is {"controller","type","publicKeyHex","privateKeyHex"}.
type KeyPairRecord struct {
	Public  PublicKeyInfo
	Private []byte
}

type recordJSON struct {
	publicKeyJSON
	PrivateKeyHex string `json:"privateKeyHex"`
}

// ExportRecord copies k into a record. Callers should Wipe the record once
// it has been serialized.
func (k *KeyPair) ExportRecord() KeyPairRecord {
	return KeyPairRecord{Public: k.PublicKey(), Private: cloneBytes(k.private)}
}

// KeyPairFromRecord rebuilds a key pair and checks that the private key
// derives the stored public key.
func KeyPairFromRecord(r KeyPairRecord) (*KeyPair, error) {
	s, err := schemeFor(r.Public.KeyType)
	if err != nil {
		return nil, err
	}
	secret, err := s.seed(r.Private)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(secret)
	pub, priv, err := s.derive(secret)
	if err != nil {
		return nil, err
	}
	if !s.samePublic(pub, r.Public.PublicKey) {
		memzero.Zero(priv)
		return nil, fmt.Errorf("%w: %s", ErrKeyMismatch, r.Public.KeyType)
	}
	return &KeyPair{public: r.Public.WithController(r.Public.Controller), private: priv}, nil
}

// Wipe zeroes the private key held by the record.
func (r *KeyPairRecord) Wipe() {
	memzero.Zero(r.Private)
	r.Private = nil
}

// MarshalJSON implements json.Marshaler.
func (r KeyPairRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		publicKeyJSON: r.Public.toJSON(),
		PrivateKeyHex: hex.EncodeToString(r.Private),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *KeyPairRecord) UnmarshalJSON(b []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var pub PublicKeyInfo
	if err := pub.fromJSON(raw.publicKeyJSON); err != nil {
		return err
	}
	priv, err := hex.DecodeString(raw.PrivateKeyHex)
	if err != nil {
		return fmt.Errorf("privateKeyHex: %w", err)
	}
	*r = KeyPairRecord{Public: pub, Private: priv}
	return nil
}
