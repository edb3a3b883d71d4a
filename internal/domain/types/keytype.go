package types

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKeyType is returned for key type names outside the registry
// and for operations on key types that have no implementation.
var ErrUnsupportedKeyType = errors.New("unsupported key type")

// KeyType identifies the algorithm family of a key. The numeric order is
// part of the serialized form and must not change.
type KeyType int

const (
	Ed25519VerificationKey2018 KeyType = iota
	EcdsaSecp256k1VerificationKey2019
	EcdsaSecp256k1RecoveryMethod2020
	X25519KeyAgreementKey2019
	Bls12381G1Key2020
	Bls12381G2Key2020
	JwsVerificationKey2020
	GpgVerificationKey2020
	RsaVerificationKey2018
	SchnorrSecp256k1VerificationKey2019
)

var keyTypeNames = [...]string{
	Ed25519VerificationKey2018:          "Ed25519VerificationKey2018",
	EcdsaSecp256k1VerificationKey2019:   "EcdsaSecp256k1VerificationKey2019",
	EcdsaSecp256k1RecoveryMethod2020:    "EcdsaSecp256k1RecoveryMethod2020",
	X25519KeyAgreementKey2019:           "X25519KeyAgreementKey2019",
	Bls12381G1Key2020:                   "Bls12381G1Key2020",
	Bls12381G2Key2020:                   "Bls12381G2Key2020",
	JwsVerificationKey2020:              "JwsVerificationKey2020",
	GpgVerificationKey2020:              "GpgVerificationKey2020",
	RsaVerificationKey2018:              "RsaVerificationKey2018",
	SchnorrSecp256k1VerificationKey2019: "SchnorrSecp256k1VerificationKey2019",
}

// KeyTypes returns every registered key type in definition order.
func KeyTypes() []KeyType {
	out := make([]KeyType, len(keyTypeNames))
	for i := range keyTypeNames {
		out[i] = KeyType(i)
	}
	return out
}

// ParseKeyType maps a canonical name to its KeyType. Matching is exact and
// case-sensitive.
func ParseKeyType(s string) (KeyType, error) {
	for i, name := range keyTypeNames {
		if name == s {
			return KeyType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, s)
}

// Valid reports whether kt is a member of the registry.
func (kt KeyType) Valid() bool {
	return kt >= 0 && int(kt) < len(keyTypeNames)
}

// Implemented reports whether cryptographic operations exist for kt.
func (kt KeyType) Implemented() bool {
	switch kt {
	case Ed25519VerificationKey2018,
		EcdsaSecp256k1VerificationKey2019,
		EcdsaSecp256k1RecoveryMethod2020,
		X25519KeyAgreementKey2019,
		Bls12381G1Key2020,
		Bls12381G2Key2020:
		return true
	default:
		return false
	}
}

// String returns the canonical name.
func (kt KeyType) String() string {
	if !kt.Valid() {
		return fmt.Sprintf("KeyType(%d)", int(kt))
	}
	return keyTypeNames[kt]
}

// MarshalText encodes kt as its canonical name.
func (kt KeyType) MarshalText() ([]byte, error) {
	if !kt.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKeyType, int(kt))
	}
	return []byte(keyTypeNames[kt]), nil
}

// UnmarshalText decodes a canonical name.
func (kt *KeyType) UnmarshalText(b []byte) error {
	parsed, err := ParseKeyType(string(b))
	if err != nil {
		return err
	}
	*kt = parsed
	return nil
}
