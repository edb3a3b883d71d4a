// Package crypto implements the key algorithms held by an identity wallet.
//
// Contents
//
//   - KeyPair and PublicKeyInfo, dispatching on types.KeyType to one
//     scheme per algorithm (Ed25519, secp256k1, secp256k1 with Keccak-256
//     recovery, X25519, BLS12-381 G1 and G2 keys)
//   - The r‖s‖v recoverable signature codec and Keccak256
//   - SealBox/OpenBox: anonymous X25519 + XChaCha20-Poly1305 encryption
//   - KeyPairRecord, the only form in which a private key leaves the package
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key types registered in types but not listed above fail every operation
// with ErrUnsupportedKeyType. Implemented types asked for an operation they
// lack fail with ErrWrongKeyType.
package crypto
