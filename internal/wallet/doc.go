// Package wallet holds key material and other content under references and
// moves it between the unlocked (in memory) and locked (password sealed)
// states.
//
// Key use goes through a reference: SignRaw, VerifyRaw, Encrypt, Decrypt and
// PublicKey fail with ErrNoSuchReference for unknown references and with
// ErrIncorrectContentType when the reference does not hold a key.
//
// Lock seals the canonical JSON encoding of the wallet with
// XChaCha20-Poly1305 under a password-derived key and appends the 24-byte
// nonce. Unlock reverses it. The default KDF is a single SHA3-256 pass;
// WithKDF selects Argon2id or scrypt.
package wallet
