package crypto

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"idwallet/internal/util/memzero"
)

const (
	// Secp256k1PrivateKeySize is the size of a secp256k1 scalar.
	Secp256k1PrivateKeySize = btcec.PrivKeyBytesLen
	// Secp256k1SignatureSize is the size of a plain r‖s signature.
	Secp256k1SignatureSize = 64

	secp256k1UncompressedSize = 65

	compactSigSize  = 65
	compactSigMagic = 27
	compactSigComp  = 4
)

var errInvalidScalar = errors.New("secret is not a valid secp256k1 scalar")

// secp256k1Scheme signs SHA-256 digests and emits r‖s with low S.
type secp256k1Scheme struct{}

func (secp256k1Scheme) derive(secret []byte) ([]byte, []byte, error) {
	if len(secret) != Secp256k1PrivateKeySize {
		return nil, nil, lengthError("secp256k1 secret", Secp256k1PrivateKeySize, len(secret))
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return nil, nil, cryptoError("secp256k1 secret", errInvalidScalar)
	}
	scalar.Zero()
	priv, pub := btcec.PrivKeyFromBytes(secret)
	defer priv.Zero()
	return pub.SerializeCompressed(), priv.Serialize(), nil
}

// generate draws candidates from rand until one is a valid scalar.
func (s secp256k1Scheme) generate(rand io.Reader) ([]byte, []byte, error) {
	buf := make([]byte, Secp256k1PrivateKeySize)
	defer memzero.Zero(buf)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, nil, cryptoError("secp256k1 secret", err)
		}
		pub, priv, err := s.derive(buf)
		if errors.Is(err, ErrCrypto) {
			continue
		}
		return pub, priv, err
	}
}

func (secp256k1Scheme) sign(priv, data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	compact, err := signCompact(priv, digest[:])
	if err != nil {
		return nil, err
	}
	return compact[1:], nil
}

func (secp256k1Scheme) verify(pub, data, sig []byte) (bool, error) {
	if len(sig) != Secp256k1SignatureSize {
		return false, lengthError("secp256k1 signature", Secp256k1SignatureSize, len(sig))
	}
	key, err := parseSecp256k1Public(pub)
	if err != nil {
		return false, err
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false, nil
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false, nil
	}
	digest := sha256.Sum256(data)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], key), nil
}

func (secp256k1Scheme) seed(priv []byte) ([]byte, error) {
	if len(priv) != Secp256k1PrivateKeySize {
		return nil, lengthError("secp256k1 secret", Secp256k1PrivateKeySize, len(priv))
	}
	return cloneBytes(priv), nil
}

// samePublic compares points, so compressed and uncompressed encodings of
// one key are equal.
func (secp256k1Scheme) samePublic(a, b []byte) bool {
	ka, err := btcec.ParsePubKey(a)
	if err != nil {
		return false
	}
	kb, err := btcec.ParsePubKey(b)
	if err != nil {
		return false
	}
	return ka.IsEqual(kb)
}

// secp256k1RecoveryScheme signs Keccak-256 digests and emits r‖s‖v.
type secp256k1RecoveryScheme struct{ secp256k1Scheme }

func (secp256k1RecoveryScheme) sign(priv, data []byte) ([]byte, error) {
	compact, err := signCompact(priv, Keccak256(data))
	if err != nil {
		return nil, err
	}
	sig, err := recoverableFromCompact(compact)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

func (secp256k1RecoveryScheme) verify(pub, data, sig []byte) (bool, error) {
	parsed, err := ParseRecoverableSignature(sig)
	if err != nil {
		return false, err
	}
	key, err := parseSecp256k1Public(pub)
	if err != nil {
		return false, err
	}
	recovered, err := parsed.recover(Keccak256(data))
	if err != nil {
		return false, nil
	}
	return recovered.IsEqual(key), nil
}

// signCompact returns the 65-byte header‖r‖s form for a compressed key.
func signCompact(priv, digest []byte) ([]byte, error) {
	if len(priv) != Secp256k1PrivateKeySize {
		return nil, lengthError("secp256k1 secret", Secp256k1PrivateKeySize, len(priv))
	}
	key, _ := btcec.PrivKeyFromBytes(priv)
	defer key.Zero()
	compact := ecdsa.SignCompact(key, digest, true)
	if len(compact) != compactSigSize {
		return nil, cryptoError("secp256k1 sign", errors.New("unexpected compact signature size"))
	}
	return compact, nil
}

func parseSecp256k1Public(pub []byte) (*btcec.PublicKey, error) {
	switch len(pub) {
	case btcec.PubKeyBytesLenCompressed, secp256k1UncompressedSize:
	default:
		return nil, lengthError("secp256k1 public key", btcec.PubKeyBytesLenCompressed, len(pub))
	}
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, cryptoError("secp256k1 public key", err)
	}
	return key, nil
}
