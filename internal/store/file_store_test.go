package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"idwallet/internal/domain"
	"idwallet/internal/store"
)

func TestWallet_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var ws domain.WalletStore = store.NewWalletFileStore(home)

	w := domain.LockedWallet{ID: "w1", Ciphertext: []byte{1, 2, 3, 4}}
	if err := ws.SaveWallet(w); err != nil {
		t.Fatalf("save wallet: %v", err)
	}

	got, err := ws.LoadWallet("w1")
	if err != nil {
		t.Fatalf("load wallet: %v", err)
	}
	if got.ID != w.ID || string(got.Ciphertext) != string(w.Ciphertext) {
		t.Fatalf("mismatch after load: %+v", got)
	}

	info, err := os.Stat(filepath.Join(home, "w1.wallet.json"))
	if err != nil {
		t.Fatalf("stat wallet file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("wallet file mode = %o, want 600", perm)
	}
}

func TestWallet_Overwrite(t *testing.T) {
	ws := store.NewWalletFileStore(t.TempDir())
	if err := ws.SaveWallet(domain.LockedWallet{ID: "w", Ciphertext: []byte("old")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ws.SaveWallet(domain.LockedWallet{ID: "w", Ciphertext: []byte("new")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := ws.LoadWallet("w")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got.Ciphertext) != "new" {
		t.Fatalf("ciphertext = %q, want new", got.Ciphertext)
	}
}

func TestWallet_Missing(t *testing.T) {
	ws := store.NewWalletFileStore(filepath.Join(t.TempDir(), "not-yet"))
	if _, err := ws.LoadWallet("nope"); !errors.Is(err, store.ErrWalletNotFound) {
		t.Fatalf("load missing: got %v, want ErrWalletNotFound", err)
	}
	if err := ws.DeleteWallet("nope"); !errors.Is(err, store.ErrWalletNotFound) {
		t.Fatalf("delete missing: got %v, want ErrWalletNotFound", err)
	}
	ids, err := ws.ListWallets()
	if err != nil || len(ids) != 0 {
		t.Fatalf("list on empty home: %v %v", ids, err)
	}
}

func TestWallet_ListDelete(t *testing.T) {
	home := t.TempDir()
	ws := store.NewWalletFileStore(home)
	for _, id := range []domain.WalletID{"b", "a", "c"} {
		if err := ws.SaveWallet(domain.LockedWallet{ID: id, Ciphertext: []byte(id)}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := os.WriteFile(filepath.Join(home, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	ids, err := ws.ListWallets()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("list = %v", ids)
	}

	if err := ws.DeleteWallet("b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ws.LoadWallet("b"); !errors.Is(err, store.ErrWalletNotFound) {
		t.Fatalf("load deleted: %v", err)
	}
}

func TestWallet_InvalidID(t *testing.T) {
	ws := store.NewWalletFileStore(t.TempDir())
	for _, id := range []domain.WalletID{"", "..", "a/b", `a\b`} {
		if err := ws.SaveWallet(domain.LockedWallet{ID: id}); !errors.Is(err, store.ErrInvalidWalletID) {
			t.Fatalf("save %q: got %v, want ErrInvalidWalletID", id, err)
		}
	}
}
