package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/bls"

	"idwallet/internal/domain/types"
)

// scheme is the per-algorithm half of the key pair dispatcher. Each
// implemented KeyType has exactly one scheme.
type scheme interface {
	// derive expands secret material into the public key and the private
	// representation kept by a KeyPair.
	derive(secret []byte) (pub, priv []byte, err error)
	generate(rand io.Reader) (pub, priv []byte, err error)
	sign(priv, data []byte) ([]byte, error)
	verify(pub, data, sig []byte) (bool, error)
	// seed returns the secret that derive accepts for a stored private key.
	seed(priv []byte) ([]byte, error)
	samePublic(a, b []byte) bool
}

var schemes = map[types.KeyType]scheme{
	types.Ed25519VerificationKey2018:        ed25519Scheme{},
	types.EcdsaSecp256k1VerificationKey2019: secp256k1Scheme{},
	types.EcdsaSecp256k1RecoveryMethod2020:  secp256k1RecoveryScheme{},
	types.X25519KeyAgreementKey2019:         x25519Scheme{},
	types.Bls12381G1Key2020:                 blsScheme[bls.KeyG1SigG2]{pubSize: blsG1Size, sigSize: blsG2Size},
	types.Bls12381G2Key2020:                 blsScheme[bls.KeyG2SigG1]{pubSize: blsG2Size, sigSize: blsG1Size},
}

func schemeFor(kt types.KeyType) (scheme, error) {
	s, ok := schemes[kt]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, kt)
	}
	return s, nil
}

// requireAgreement gates encrypt/decrypt, which only X25519 supports.
func requireAgreement(kt types.KeyType) error {
	if _, err := schemeFor(kt); err != nil {
		return err
	}
	if kt != types.X25519KeyAgreementKey2019 {
		return fmt.Errorf("%w: %s cannot encrypt or decrypt", ErrWrongKeyType, kt)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
