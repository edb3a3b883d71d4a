package wallet

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"idwallet/internal/crypto"
	"idwallet/internal/domain"
	"idwallet/internal/util/memzero"
	corewallet "idwallet/internal/wallet"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	defaultContext = []string{"https://w3id.org/wallet/v1"}
	defaultType    = []string{"UniversalWallet2020"}
)

// Service manages wallets held in a WalletStore.
type Service struct {
	mu    sync.RWMutex
	store domain.WalletStore
	log   *zap.Logger
	opts  []corewallet.Option
}

// New returns a wallet service backed by the given store. opts are passed to
// every Lock and Unlock, so they must not change for an existing home.
func New(s domain.WalletStore, log *zap.Logger, opts ...corewallet.Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, log: log.Named("wallet"), opts: opts}
}

// CreateWallet creates an empty wallet locked under passphrase.
func (s *Service) CreateWallet(passphrase string) (domain.WalletID, error) {
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	w := corewallet.New("", defaultContext, defaultType)
	defer w.Close()
	if err := s.save(w, passphrase); err != nil {
		return "", err
	}
	id := domain.WalletID(w.ID())
	s.log.Info("wallet created", zap.String("wallet", id.String()))
	return id, nil
}

// ListWallets returns the ids of all stored wallets.
func (s *Service) ListWallets() ([]domain.WalletID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ListWallets()
}

// GenerateKey adds a fresh random key of type kt.
func (s *Service) GenerateKey(
	id domain.WalletID,
	passphrase string,
	kt domain.KeyType,
	controller []string,
) (domain.KeySummary, error) {
	kp, err := crypto.RandomKeyPair(kt)
	if err != nil {
		return domain.KeySummary{}, err
	}
	return s.addKey(id, passphrase, kp, controller)
}

// ImportKey adds a key of type kt derived from secret.
func (s *Service) ImportKey(
	id domain.WalletID,
	passphrase string,
	kt domain.KeyType,
	secret []byte,
	controller []string,
) (domain.KeySummary, error) {
	kp, err := crypto.NewKeyPair(kt, secret)
	if err != nil {
		return domain.KeySummary{}, err
	}
	return s.addKey(id, passphrase, kp, controller)
}

func (s *Service) addKey(
	id domain.WalletID,
	passphrase string,
	kp *crypto.KeyPair,
	controller []string,
) (domain.KeySummary, error) {
	owned := kp.WithController(controller)
	kp.Wipe()

	var sum domain.KeySummary
	err := s.update(id, passphrase, func(w *corewallet.Unlocked) error {
		ref, err := w.AddKey(owned)
		if err != nil {
			return err
		}
		sum = summarize(ref, owned.PublicKey())
		return nil
	})
	if err != nil {
		owned.Wipe()
		return domain.KeySummary{}, err
	}
	s.log.Info("key added",
		zap.String("wallet", id.String()),
		zap.String("ref", sum.Reference.String()),
		zap.Stringer("type", sum.Type),
	)
	return sum, nil
}

// ListKeys describes every key in the wallet, sorted by reference.
func (s *Service) ListKeys(id domain.WalletID, passphrase string) ([]domain.KeySummary, error) {
	var out []domain.KeySummary
	err := s.view(id, passphrase, func(w *corewallet.Unlocked) error {
		for _, ref := range w.References() {
			pub, err := w.PublicKey(ref)
			if errors.Is(err, corewallet.ErrIncorrectContentType) {
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, summarize(ref, pub))
		}
		return nil
	})
	return out, err
}

// RemoveKey deletes the key stored under ref.
func (s *Service) RemoveKey(id domain.WalletID, passphrase string, ref domain.ContentRef) error {
	err := s.update(id, passphrase, func(w *corewallet.Unlocked) error {
		if _, err := w.PublicKey(ref.String()); err != nil {
			return err
		}
		return w.Remove(ref.String())
	})
	if err != nil {
		return err
	}
	s.log.Info("key removed", zap.String("wallet", id.String()), zap.String("ref", ref.String()))
	return nil
}

// DeleteWallet removes the wallet after checking that passphrase unlocks it.
func (s *Service) DeleteWallet(id domain.WalletID, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.open(id, passphrase)
	if err != nil {
		return err
	}
	w.Close()
	if err := s.store.DeleteWallet(id); err != nil {
		return err
	}
	s.log.Info("wallet deleted", zap.String("wallet", id.String()))
	return nil
}

// Sign signs data with the key under ref.
func (s *Service) Sign(
	id domain.WalletID,
	passphrase string,
	ref domain.ContentRef,
	data []byte,
) ([]byte, error) {
	var sig []byte
	err := s.view(id, passphrase, func(w *corewallet.Unlocked) error {
		var err error
		sig, err = w.SignRaw(ref.String(), data)
		return err
	})
	s.logUse("sign", id, ref, err)
	return sig, err
}

// Verify checks sig over data with the key under ref.
func (s *Service) Verify(
	id domain.WalletID,
	passphrase string,
	ref domain.ContentRef,
	data, sig []byte,
) (bool, error) {
	var ok bool
	err := s.view(id, passphrase, func(w *corewallet.Unlocked) error {
		var err error
		ok, err = w.VerifyRaw(ref.String(), data, sig)
		return err
	})
	s.logUse("verify", id, ref, err)
	return ok, err
}

// Encrypt seals plaintext to the X25519 key under ref.
func (s *Service) Encrypt(
	id domain.WalletID,
	passphrase string,
	ref domain.ContentRef,
	plaintext []byte,
) ([]byte, error) {
	var box []byte
	err := s.view(id, passphrase, func(w *corewallet.Unlocked) error {
		var err error
		box, err = w.Encrypt(ref.String(), plaintext)
		return err
	})
	s.logUse("encrypt", id, ref, err)
	return box, err
}

// Decrypt opens a sealed box addressed to the X25519 key under ref.
func (s *Service) Decrypt(
	id domain.WalletID,
	passphrase string,
	ref domain.ContentRef,
	box []byte,
) ([]byte, error) {
	var pt []byte
	err := s.view(id, passphrase, func(w *corewallet.Unlocked) error {
		var err error
		pt, err = w.Decrypt(ref.String(), box)
		return err
	})
	s.logUse("decrypt", id, ref, err)
	return pt, err
}

// view runs fn on the unlocked wallet under the read lock.
func (s *Service) view(id domain.WalletID, passphrase string, fn func(*corewallet.Unlocked) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.open(id, passphrase)
	if err != nil {
		return err
	}
	defer w.Close()
	return fn(w)
}

// update runs fn on the unlocked wallet and saves the result. Nothing is
// written when fn fails.
func (s *Service) update(id domain.WalletID, passphrase string, fn func(*corewallet.Unlocked) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.open(id, passphrase)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := fn(w); err != nil {
		return err
	}
	return s.save(w, passphrase)
}

func (s *Service) open(id domain.WalletID, passphrase string) (*corewallet.Unlocked, error) {
	locked, err := s.store.LoadWallet(id)
	if err != nil {
		return nil, err
	}
	pw := []byte(passphrase)
	defer memzero.Zero(pw)
	w, err := corewallet.Unlock(locked, pw, s.opts...)
	if err != nil {
		s.log.Warn("unlock failed", zap.String("wallet", id.String()), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (s *Service) save(w *corewallet.Unlocked, passphrase string) error {
	pw := []byte(passphrase)
	defer memzero.Zero(pw)
	locked, err := w.Lock(pw, s.opts...)
	if err != nil {
		return err
	}
	return s.store.SaveWallet(locked)
}

func (s *Service) logUse(op string, id domain.WalletID, ref domain.ContentRef, err error) {
	if err != nil {
		s.log.Debug(op+" failed", zap.String("wallet", id.String()), zap.String("ref", ref.String()), zap.Error(err))
		return
	}
	s.log.Debug(op, zap.String("wallet", id.String()), zap.String("ref", ref.String()))
}

func summarize(ref string, pub crypto.PublicKeyInfo) domain.KeySummary {
	return domain.KeySummary{
		Reference:   domain.ContentRef(ref),
		Type:        pub.KeyType,
		Controller:  pub.Controller,
		PublicKey:   pub.PublicKey,
		Fingerprint: pub.Fingerprint(),
	}
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertions that Service implements the domain service interfaces.
var (
	_ domain.WalletService = (*Service)(nil)
	_ domain.KeyOpsService = (*Service)(nil)
)
