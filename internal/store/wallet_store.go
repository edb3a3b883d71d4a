package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"idwallet/internal/domain"
)

const walletSuffix = ".wallet.json"

var (
	// ErrWalletNotFound is returned when no file exists for a wallet id.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidWalletID is returned for ids that cannot name a file.
	ErrInvalidWalletID = errors.New("invalid wallet id")
)

// WalletFileStore keeps one <id>.wallet.json file per locked wallet.
type WalletFileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewWalletFileStore returns a WalletFileStore rooted at dir.
func NewWalletFileStore(dir string) *WalletFileStore {
	return &WalletFileStore{dir: dir}
}

// SaveWallet writes w, replacing any earlier version.
func (s *WalletFileStore) SaveWallet(w domain.LockedWallet) error {
	path, err := s.path(w.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureDir(s.dir); err != nil {
		return err
	}
	return writeJSON(path, w, 0o600)
}

// LoadWallet reads the wallet stored under id.
func (s *WalletFileStore) LoadWallet(id domain.WalletID) (domain.LockedWallet, error) {
	path, err := s.path(id)
	if err != nil {
		return domain.LockedWallet{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := readFile(path)
	if err != nil {
		return domain.LockedWallet{}, err
	}
	if b == nil {
		return domain.LockedWallet{}, fmt.Errorf("%w: %s", ErrWalletNotFound, id)
	}
	var w domain.LockedWallet
	if err := json.Unmarshal(b, &w); err != nil {
		return domain.LockedWallet{}, fmt.Errorf("decode wallet %s: %w", id, err)
	}
	if w.ID != id {
		return domain.LockedWallet{}, fmt.Errorf("wallet file %s holds id %q", filepath.Base(path), w.ID)
	}
	return w, nil
}

// ListWallets returns the ids of every stored wallet in sorted order.
func (s *WalletFileStore) ListWallets() ([]domain.WalletID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []domain.WalletID
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, walletSuffix) {
			continue
		}
		ids = append(ids, domain.WalletID(strings.TrimSuffix(name, walletSuffix)))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// DeleteWallet removes the wallet stored under id.
func (s *WalletFileStore) DeleteWallet(id domain.WalletID) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, id)
	}
	return err
}

func (s *WalletFileStore) path(id domain.WalletID) (string, error) {
	name := id.String()
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletID, name)
	}
	return filepath.Join(s.dir, name+walletSuffix), nil
}

// Compile-time assertion that WalletFileStore implements domain.WalletStore.
var _ domain.WalletStore = (*WalletFileStore)(nil)
