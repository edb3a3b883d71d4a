package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"idwallet/internal/domain/types"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) types.Fingerprint {
	sum := sha256.Sum256(pub)
	return types.Fingerprint(hex.EncodeToString(sum[:10]))
}
