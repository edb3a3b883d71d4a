package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"
)

// RecoverableSignatureSize is the size of an r‖s‖v signature.
const RecoverableSignatureSize = 65

// ErrInvalidRecoveryID is returned for a v byte outside 0..3 and 27..30.
var ErrInvalidRecoveryID = errors.New("invalid recovery id")

// RecoverableSignature is a secp256k1 signature carrying the recovery id
// needed to reconstruct the signer's public key.
type RecoverableSignature struct {
	R [32]byte
	S [32]byte
	V byte
}

// ParseRecoverableSignature decodes the 65-byte r‖s‖v form. V is kept as
// given; RecoveryID normalizes it.
func ParseRecoverableSignature(b []byte) (RecoverableSignature, error) {
	var sig RecoverableSignature
	if len(b) != RecoverableSignatureSize {
		return sig, lengthError("recoverable signature", RecoverableSignatureSize, len(b))
	}
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:64])
	sig.V = b[64]
	return sig, nil
}

// Bytes returns r‖s‖v.
func (s RecoverableSignature) Bytes() []byte {
	out := make([]byte, 0, RecoverableSignatureSize)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// RecoveryID returns V in the range 0..3, accepting the 27-offset form.
func (s RecoverableSignature) RecoveryID() (byte, error) {
	switch {
	case s.V <= 3:
		return s.V, nil
	case s.V >= compactSigMagic && s.V <= compactSigMagic+3:
		return s.V - compactSigMagic, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRecoveryID, s.V)
	}
}

// RecoverPublicKey returns the compressed public key that produced the
// signature over digest.
func (s RecoverableSignature) RecoverPublicKey(digest []byte) ([]byte, error) {
	key, err := s.recover(digest)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}

func (s RecoverableSignature) recover(digest []byte) (*btcec.PublicKey, error) {
	id, err := s.RecoveryID()
	if err != nil {
		return nil, err
	}
	compact := make([]byte, 0, compactSigSize)
	compact = append(compact, compactSigMagic+compactSigComp+id)
	compact = append(compact, s.R[:]...)
	compact = append(compact, s.S[:]...)
	key, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, cryptoError("secp256k1 recover", err)
	}
	return key, nil
}

func recoverableFromCompact(compact []byte) (RecoverableSignature, error) {
	var sig RecoverableSignature
	if len(compact) != compactSigSize || compact[0] < compactSigMagic {
		return sig, cryptoError("secp256k1 sign", errors.New("malformed compact signature"))
	}
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	sig.V = (compact[0] - compactSigMagic) & 3
	return sig, nil
}

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest of data.
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
