package wallet

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// KDF turns a password into the 32-byte wallet key. salt is derived from
// the wallet id; unsalted KDFs ignore it.
type KDF interface {
	Name() string
	DeriveKey(password, salt []byte) ([]byte, error)
}

// SHA3KDF is a single SHA3-256 pass over the password. It has no work
// factor and exists for compatibility with existing wallets.
var SHA3KDF KDF = sha3KDF{}

type sha3KDF struct{}

func (sha3KDF) Name() string { return "sha3" }

func (sha3KDF) DeriveKey(password, _ []byte) ([]byte, error) {
	sum := sha3.Sum256(password)
	return sum[:], nil
}

// Argon2idKDF derives the key with Argon2id.
type Argon2idKDF struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2id returns the RFC 9106 second recommended parameter set.
func DefaultArgon2id() Argon2idKDF {
	return Argon2idKDF{Time: 3, Memory: 64 * 1024, Threads: 4}
}

func (Argon2idKDF) Name() string { return "argon2id" }

func (k Argon2idKDF) DeriveKey(password, salt []byte) ([]byte, error) {
	if k.Time == 0 || k.Memory == 0 || k.Threads == 0 {
		return nil, fmt.Errorf("argon2id: invalid parameters %+v", k)
	}
	return argon2.IDKey(password, salt, k.Time, k.Memory, k.Threads, chacha20poly1305.KeySize), nil
}

// ScryptKDF derives the key with scrypt.
type ScryptKDF struct {
	N, R, P int
}

// DefaultScrypt returns the interactive-login parameters N=2^15, r=8, p=1.
func DefaultScrypt() ScryptKDF { return ScryptKDF{N: 1 << 15, R: 8, P: 1} }

func (ScryptKDF) Name() string { return "scrypt" }

func (k ScryptKDF) DeriveKey(password, salt []byte) ([]byte, error) {
	key, err := scrypt.Key(password, salt, k.N, k.R, k.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return key, nil
}

// KDFByName maps a configuration name to a KDF with default parameters.
func KDFByName(name string) (KDF, error) {
	switch name {
	case "", "sha3":
		return SHA3KDF, nil
	case "argon2id":
		return DefaultArgon2id(), nil
	case "scrypt":
		return DefaultScrypt(), nil
	default:
		return nil, fmt.Errorf("unknown kdf %q (want sha3, argon2id or scrypt)", name)
	}
}

// kdfSalt binds salted KDFs to the wallet id, so the blob layout needs no
// extra field.
func kdfSalt(id string) []byte {
	sum := sha3.Sum256([]byte("idwallet kdf salt\x00" + id))
	return sum[:16]
}

// Option configures Lock and Unlock.
type Option func(*options)

type options struct {
	kdf  KDF
	rand io.Reader
}

// WithKDF selects the password KDF. Lock and Unlock must agree.
func WithKDF(k KDF) Option {
	return func(o *options) {
		if k != nil {
			o.kdf = k
		}
	}
}

// WithRand overrides the nonce source used by Lock.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{kdf: SHA3KDF, rand: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
