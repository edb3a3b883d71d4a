package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mr-tron/base58"

	"idwallet/internal/domain/types"
)

// multibaseBase58BTC is the multibase prefix for base58btc.
const multibaseBase58BTC = "z"

// PublicKeyInfo is the shareable half of a key: its type, raw public key
// bytes and the DIDs that control it.
type PublicKeyInfo struct {
	Controller []string
	KeyType    types.KeyType
	PublicKey  []byte
}

type publicKeyJSON struct {
	Controller   []string      `json:"controller"`
	Type         types.KeyType `json:"type"`
	PublicKeyHex string        `json:"publicKeyHex"`
}

// NewPublicKeyInfo wraps raw public key bytes with no controllers.
func NewPublicKeyInfo(kt types.KeyType, pub []byte) PublicKeyInfo {
	return PublicKeyInfo{Controller: []string{}, KeyType: kt, PublicKey: cloneBytes(pub)}
}

// WithController returns a copy of p whose controller list is controller.
func (p PublicKeyInfo) WithController(controller []string) PublicKeyInfo {
	c := make([]string, len(controller))
	copy(c, controller)
	return PublicKeyInfo{Controller: c, KeyType: p.KeyType, PublicKey: cloneBytes(p.PublicKey)}
}

// Verify checks sig over data. A malformed signature or key is an error; a
// well-formed signature that does not match returns false with a nil error.
func (p PublicKeyInfo) Verify(data, sig []byte) (bool, error) {
	s, err := schemeFor(p.KeyType)
	if err != nil {
		return false, err
	}
	return s.verify(p.PublicKey, data, sig)
}

// Encrypt seals data to this key. Only X25519 keys can be encrypted to.
func (p PublicKeyInfo) Encrypt(data []byte) ([]byte, error) {
	return p.EncryptWithReader(data, rand.Reader)
}

// EncryptWithReader is Encrypt with an explicit randomness source.
func (p PublicKeyInfo) EncryptWithReader(data []byte, rand io.Reader) ([]byte, error) {
	if err := requireAgreement(p.KeyType); err != nil {
		return nil, err
	}
	return SealBox(p.PublicKey, data, rand)
}

// Hex returns the lowercase hex encoding of the public key.
func (p PublicKeyInfo) Hex() string { return hex.EncodeToString(p.PublicKey) }

// Base58 returns the base58btc encoding of the public key.
func (p PublicKeyInfo) Base58() string { return base58.Encode(p.PublicKey) }

// Base64 returns the standard padded base64 encoding of the public key.
func (p PublicKeyInfo) Base64() string { return base64.StdEncoding.EncodeToString(p.PublicKey) }

// Multibase returns the base58btc multibase form ("z" prefix).
func (p PublicKeyInfo) Multibase() string { return multibaseBase58BTC + p.Base58() }

// EthereumAddress returns the EIP-55 checksummed address of a secp256k1
// key: the last 20 bytes of Keccak-256 over the uncompressed point.
func (p PublicKeyInfo) EthereumAddress() (string, error) {
	switch p.KeyType {
	case types.EcdsaSecp256k1VerificationKey2019, types.EcdsaSecp256k1RecoveryMethod2020:
	default:
		return "", fmt.Errorf("%w: %s has no ethereum address", ErrWrongKeyType, p.KeyType)
	}
	key, err := parseSecp256k1Public(p.PublicKey)
	if err != nil {
		return "", err
	}
	sum := Keccak256(key.SerializeUncompressed()[1:])
	return checksumAddress(sum[len(sum)-20:]), nil
}

func checksumAddress(addr []byte) string {
	lower := []byte(hex.EncodeToString(addr))
	h := Keccak256(lower)
	for i, c := range lower {
		nibble := h[i/2] >> 4
		if i%2 == 1 {
			nibble = h[i/2] & 0x0f
		}
		if c >= 'a' && nibble >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(lower)
}

// Fingerprint returns the display fingerprint of the public key.
func (p PublicKeyInfo) Fingerprint() types.Fingerprint { return Fingerprint(p.PublicKey) }

// Equal reports whether p and o describe the same key and controllers.
func (p PublicKeyInfo) Equal(o PublicKeyInfo) bool {
	if p.KeyType != o.KeyType || !bytes.Equal(p.PublicKey, o.PublicKey) {
		return false
	}
	if len(p.Controller) != len(o.Controller) {
		return false
	}
	for i := range p.Controller {
		if p.Controller[i] != o.Controller[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (p PublicKeyInfo) String() string {
	return fmt.Sprintf("%s(%s)", p.KeyType, p.Fingerprint())
}

// MarshalJSON encodes {"controller","type","publicKeyHex"}.
func (p PublicKeyInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (p *PublicKeyInfo) UnmarshalJSON(b []byte) error {
	var raw publicKeyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return p.fromJSON(raw)
}

func (p PublicKeyInfo) toJSON() publicKeyJSON {
	c := p.Controller
	if c == nil {
		c = []string{}
	}
	return publicKeyJSON{Controller: c, Type: p.KeyType, PublicKeyHex: p.Hex()}
}

func (p *PublicKeyInfo) fromJSON(raw publicKeyJSON) error {
	pub, err := hex.DecodeString(raw.PublicKeyHex)
	if err != nil {
		return fmt.Errorf("publicKeyHex: %w", err)
	}
	c := raw.Controller
	if c == nil {
		c = []string{}
	}
	*p = PublicKeyInfo{Controller: c, KeyType: raw.Type, PublicKey: pub}
	return nil
}
