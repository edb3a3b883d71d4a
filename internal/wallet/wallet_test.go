package wallet_test

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/sha3"

	"idwallet/internal/crypto"
	"idwallet/internal/domain/types"
	"idwallet/internal/wallet"
)

var (
	testContext = []string{"https://www.w3.org/2018/credentials/v1"}
	testType    = []string{"UniversalWallet2020"}
)

func newKey(t *testing.T, kt types.KeyType) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.RandomKeyPair(kt)
	require.NoError(t, err)
	return kp
}

func populated(t *testing.T) *wallet.Unlocked {
	t.Helper()
	w := wallet.New("urn:uuid:test-wallet", testContext, testType)
	for _, kt := range types.KeyTypes() {
		if !kt.Implemented() {
			continue
		}
		require.NoError(t, w.PutKey(kt.String(), newKey(t, kt).WithController([]string{"did:example:holder"})))
	}
	require.NoError(t, w.PutContent("did-doc", wallet.OpaqueContent{
		Type: "DIDDocument",
		Data: json.RawMessage(`{"id":"did:example:holder","service":[]}`),
	}))
	return w
}

func TestNewAssignsUUID(t *testing.T) {
	w := wallet.New("", nil, nil)
	_, err := uuid.Parse(w.ID())
	assert.NoError(t, err)
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Context())
}

func TestLockUnlockRoundTrip(t *testing.T) {
	w := populated(t)
	locked, err := w.Lock([]byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, types.WalletID("urn:uuid:test-wallet"), locked.ID)

	back, err := wallet.Unlock(locked, []byte("correct horse"))
	require.NoError(t, err)
	assert.True(t, w.Equal(back))
	assert.Equal(t, w.References(), back.References())
	assert.Equal(t, testContext, back.Context())
	assert.Equal(t, testType, back.Type())

	c, ok := back.Get("did-doc")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"did:example:holder","service":[]}`, string(c.(wallet.OpaqueContent).Data))
}

func TestLockedKeysStillWork(t *testing.T) {
	w := populated(t)
	ref := types.EcdsaSecp256k1RecoveryMethod2020.String()
	sig, err := w.SignRaw(ref, []byte("payload"))
	require.NoError(t, err)

	locked, err := w.Lock([]byte("pw"))
	require.NoError(t, err)
	back, err := wallet.Unlock(locked, []byte("pw"))
	require.NoError(t, err)

	ok, err := back.VerifyRaw(ref, []byte("payload"), sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlockWrongPassword(t *testing.T) {
	locked, err := populated(t).Lock([]byte("right"))
	require.NoError(t, err)
	_, err = wallet.Unlock(locked, []byte("wrong"))
	assert.ErrorIs(t, err, wallet.ErrDecryptionFailed)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestUnlockDoesNotMutateLocked(t *testing.T) {
	locked, err := populated(t).Lock([]byte("right"))
	require.NoError(t, err)
	snapshot := append([]byte(nil), locked.Ciphertext...)

	_, err = wallet.Unlock(locked, []byte("wrong"))
	require.Error(t, err)
	assert.Equal(t, snapshot, locked.Ciphertext)

	_, err = wallet.Unlock(locked, []byte("right"))
	require.NoError(t, err)
	assert.Equal(t, snapshot, locked.Ciphertext)
}

func TestUnlockShortOrTampered(t *testing.T) {
	locked, err := populated(t).Lock([]byte("pw"))
	require.NoError(t, err)

	for _, n := range []int{0, 10, wallet.NonceSize, wallet.NonceSize + 15} {
		short := types.LockedWallet{ID: locked.ID, Ciphertext: locked.Ciphertext[:n]}
		_, err := wallet.Unlock(short, []byte("pw"))
		assert.ErrorIs(t, err, wallet.ErrDecryptionFailed, "len %d", n)
	}

	tampered := append([]byte(nil), locked.Ciphertext...)
	tampered[0] ^= 1
	_, err = wallet.Unlock(types.LockedWallet{ID: locked.ID, Ciphertext: tampered}, []byte("pw"))
	assert.ErrorIs(t, err, wallet.ErrDecryptionFailed)
}

func TestCiphertextLayout(t *testing.T) {
	w := wallet.New("layout", testContext, testType)
	require.NoError(t, w.PutKey("k", newKey(t, types.Ed25519VerificationKey2018)))

	nonce := bytes.Repeat([]byte{0x07}, wallet.NonceSize)
	locked, err := w.Lock([]byte("pw"), wallet.WithRand(bytes.NewReader(nonce)))
	require.NoError(t, err)

	ct := locked.Ciphertext
	require.Greater(t, len(ct), wallet.NonceSize)
	assert.Equal(t, nonce, ct[len(ct)-wallet.NonceSize:], "nonce trails the sealed payload")

	// The key is SHA3-256(password) and the plaintext is the JSON encoding.
	key := sha3.Sum256([]byte("pw"))
	aead, err := chacha20poly1305.NewX(key[:])
	require.NoError(t, err)
	pt, err := aead.Open(nil, nonce, ct[:len(ct)-wallet.NonceSize], nil)
	require.NoError(t, err)

	var doc struct {
		Context  []string `json:"@context"`
		ID       string   `json:"id"`
		Type     []string `json:"type"`
		Contents map[string]struct {
			Type string `json:"type"`
			Key  struct {
				Controller    []string `json:"controller"`
				Type          string   `json:"type"`
				PublicKeyHex  string   `json:"publicKeyHex"`
				PrivateKeyHex string   `json:"privateKeyHex"`
			} `json:"key"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(pt, &doc))
	assert.Equal(t, "layout", doc.ID)
	assert.Equal(t, testContext, doc.Context)
	assert.Equal(t, "Key", doc.Contents["k"].Type)
	assert.Equal(t, "Ed25519VerificationKey2018", doc.Contents["k"].Key.Type)
	assert.Len(t, doc.Contents["k"].Key.PrivateKeyHex, 128)
	assert.NotNil(t, doc.Contents["k"].Key.Controller)
}

func sealRaw(t *testing.T, password, plaintext []byte) []byte {
	t.Helper()
	key := sha3.Sum256(password)
	aead, err := chacha20poly1305.NewX(key[:])
	require.NoError(t, err)
	nonce := make([]byte, wallet.NonceSize)
	return append(aead.Seal(nil, nonce, plaintext, nil), nonce...)
}

func TestUnlockMalformedPlaintext(t *testing.T) {
	for _, pt := range []string{
		"not json",
		`{"id":""}`,
		`{"id":"x","contents":{"k":{"type":"Key"}}}`,
		`{"id":"x","contents":{"k":{"type":"Key","key":{"controller":[],"type":"Ed25519VerificationKey2018","publicKeyHex":"00","privateKeyHex":"zz"}}}}`,
	} {
		locked := types.LockedWallet{ID: "x", Ciphertext: sealRaw(t, []byte("pw"), []byte(pt))}
		_, err := wallet.Unlock(locked, []byte("pw"))
		assert.ErrorIs(t, err, wallet.ErrEncoding, pt)
	}
}

func TestUnlockRejectsMismatchedKey(t *testing.T) {
	a := newKey(t, types.Ed25519VerificationKey2018).ExportRecord()
	b := newKey(t, types.Ed25519VerificationKey2018).ExportRecord()
	a.Public = b.Public
	rec, err := json.Marshal(a)
	require.NoError(t, err)

	pt := `{"@context":[],"id":"x","type":[],"contents":{"k":{"type":"Key","key":` + string(rec) + `}}}`
	locked := types.LockedWallet{ID: "x", Ciphertext: sealRaw(t, []byte("pw"), []byte(pt))}
	_, err = wallet.Unlock(locked, []byte("pw"))
	assert.ErrorIs(t, err, wallet.ErrEncoding)
}

func TestUnlockIDMismatch(t *testing.T) {
	locked, err := wallet.New("one", nil, nil).Lock([]byte("pw"))
	require.NoError(t, err)
	locked.ID = "two"
	_, err = wallet.Unlock(locked, []byte("pw"))
	assert.ErrorIs(t, err, wallet.ErrEncoding)
}

func TestLockEmptyPassword(t *testing.T) {
	_, err := populated(t).Lock(nil)
	assert.ErrorIs(t, err, wallet.ErrEmptyPassword)
}

func TestSaltedKDFs(t *testing.T) {
	kdfs := []wallet.KDF{
		wallet.Argon2idKDF{Time: 1, Memory: 64, Threads: 1},
		wallet.ScryptKDF{N: 1 << 10, R: 8, P: 1},
	}
	for _, kdf := range kdfs {
		t.Run(kdf.Name(), func(t *testing.T) {
			w := populated(t)
			locked, err := w.Lock([]byte("pw"), wallet.WithKDF(kdf))
			require.NoError(t, err)

			back, err := wallet.Unlock(locked, []byte("pw"), wallet.WithKDF(kdf))
			require.NoError(t, err)
			assert.True(t, w.Equal(back))

			_, err = wallet.Unlock(locked, []byte("pw"))
			assert.ErrorIs(t, err, wallet.ErrDecryptionFailed, "default KDF must not open a salted blob")
		})
	}
}

func TestKDFByName(t *testing.T) {
	for _, name := range []string{"sha3", "argon2id", "scrypt"} {
		kdf, err := wallet.KDFByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, kdf.Name())
	}
	_, err := wallet.KDFByName("md5")
	assert.Error(t, err)
}

func TestResolveErrors(t *testing.T) {
	w := populated(t)
	ops := map[string]func(ref string) error{
		"SignRaw": func(ref string) error { _, err := w.SignRaw(ref, []byte("m")); return err },
		"VerifyRaw": func(ref string) error {
			_, err := w.VerifyRaw(ref, []byte("m"), make([]byte, 64))
			return err
		},
		"Decrypt":   func(ref string) error { _, err := w.Decrypt(ref, make([]byte, 80)); return err },
		"Encrypt":   func(ref string) error { _, err := w.Encrypt(ref, []byte("m")); return err },
		"PublicKey": func(ref string) error { _, err := w.PublicKey(ref); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op("missing"), wallet.ErrNoSuchReference)
			assert.ErrorIs(t, op("did-doc"), wallet.ErrIncorrectContentType)
		})
	}
}

func TestWalletKeyOperations(t *testing.T) {
	w := populated(t)
	ref := types.X25519KeyAgreementKey2019.String()

	box, err := w.Encrypt(ref, []byte("to myself"))
	require.NoError(t, err)
	pt, err := w.Decrypt(ref, box)
	require.NoError(t, err)
	assert.Equal(t, []byte("to myself"), pt)

	_, err = w.SignRaw(ref, []byte("m"))
	assert.ErrorIs(t, err, crypto.ErrWrongKeyType)

	pub, err := w.PublicKey(types.Ed25519VerificationKey2018.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"did:example:holder"}, pub.Controller)
}

func TestContentManagement(t *testing.T) {
	w := wallet.New("m", nil, nil)
	kp := newKey(t, types.Ed25519VerificationKey2018)

	ref, err := w.AddKey(kp)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
	assert.ErrorIs(t, w.PutKey(ref, newKey(t, types.Ed25519VerificationKey2018)), wallet.ErrReferenceExists)

	_, err = w.AddKey(nil)
	assert.ErrorIs(t, err, wallet.ErrInvalidContent)
	assert.ErrorIs(t, w.PutContent("x", wallet.OpaqueContent{Type: "Key"}), wallet.ErrInvalidContent)
	assert.ErrorIs(t, w.PutContent("x", wallet.OpaqueContent{Type: "Note", Data: json.RawMessage("{")}), wallet.ErrInvalidContent)
	assert.ErrorIs(t, w.PutContent("", wallet.OpaqueContent{Type: "Note"}), wallet.ErrInvalidContent)

	require.NoError(t, w.PutContent("b-note", wallet.OpaqueContent{Type: "Note"}))
	refs := w.References()
	assert.Len(t, refs, 2)
	assert.True(t, refs[0] < refs[1])

	require.NoError(t, w.Remove(ref))
	assert.ErrorIs(t, w.Remove(ref), wallet.ErrNoSuchReference)
	_, ok := w.Get(ref)
	assert.False(t, ok)
	assert.Equal(t, 1, w.Len())
}

func TestConcurrentUse(t *testing.T) {
	w := populated(t)
	ref := types.Ed25519VerificationKey2018.String()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sig, err := w.SignRaw(ref, []byte("m"))
			assert.NoError(t, err)
			ok, err := w.VerifyRaw(ref, []byte("m"), sig)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
		go func() {
			defer wg.Done()
			_, err := w.AddKey(newKeyNoT(types.X25519KeyAgreementKey2019))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := w.Lock([]byte("pw"))
	require.NoError(t, err)
}

func newKeyNoT(kt types.KeyType) *crypto.KeyPair {
	kp, err := crypto.RandomKeyPair(kt)
	if err != nil {
		panic(err)
	}
	return kp
}

func TestClose(t *testing.T) {
	w := populated(t)
	w.Close()
	assert.Equal(t, 0, w.Len())
}

func TestNonUTF8StringsAreRefused(t *testing.T) {
	w := wallet.New("utf8", nil, nil)
	kp := newKey(t, types.Ed25519VerificationKey2018)

	assert.ErrorIs(t, w.PutKey("ref-\xfe", kp), wallet.ErrInvalidContent)
	assert.ErrorIs(t, w.PutContent("note", wallet.OpaqueContent{Type: "Note-\xff"}), wallet.ErrInvalidContent)
	assert.ErrorIs(t, w.PutKey("k", kp.WithController([]string{"did:\xff"})), wallet.ErrInvalidContent)
	_, err := w.AddKey(kp.WithController([]string{"did:\xff"}))
	assert.ErrorIs(t, err, wallet.ErrInvalidContent)
	assert.Equal(t, 0, w.Len())

	for _, bad := range []*wallet.Unlocked{
		wallet.New("wallet-\xff", nil, nil),
		wallet.New("ok", []string{"ctx-\xff"}, nil),
		wallet.New("ok", nil, []string{"type-\xff"}),
	} {
		require.NoError(t, bad.PutKey("k", newKey(t, types.Ed25519VerificationKey2018)))
		_, err := bad.Lock([]byte("pw"))
		assert.ErrorIs(t, err, wallet.ErrEncoding)
	}
}

func TestNonASCIIRoundTrip(t *testing.T) {
	w := wallet.New("wallet-é", []string{"ctx-ü"}, []string{"Brieftasche"})
	require.NoError(t, w.PutKey("schlüssel", newKey(t, types.Ed25519VerificationKey2018).WithController([]string{"did:example:zoë"})))
	require.NoError(t, w.PutContent("notiz", wallet.OpaqueContent{Type: "Notiz-ß", Data: json.RawMessage(`"größe"`)}))

	locked, err := w.Lock([]byte("pw"))
	require.NoError(t, err)
	back, err := wallet.Unlock(locked, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, w.Equal(back))

	_, err = back.SignRaw("schlüssel", []byte("m"))
	assert.NoError(t, err)
}

func TestOpaqueDataIsStoredCompacted(t *testing.T) {
	w := wallet.New("compact", nil, nil)
	require.NoError(t, w.PutContent("doc", wallet.OpaqueContent{
		Type: "Note",
		Data: json.RawMessage("{ \"a\" : [1, 2] ,\n \"h\": \"<b>&</b>\" }"),
	}))
	c, ok := w.Get("doc")
	require.True(t, ok)
	assert.Equal(t, `{"a":[1,2],"h":"<b>&</b>"}`, string(c.(wallet.OpaqueContent).Data))

	locked, err := w.Lock([]byte("pw"))
	require.NoError(t, err)
	back, err := wallet.Unlock(locked, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, w.Equal(back))
	c, ok = back.Get("doc")
	require.True(t, ok)
	assert.Equal(t, `{"a":[1,2],"h":"<b>&</b>"}`, string(c.(wallet.OpaqueContent).Data))
}

func TestConcurrentCrossEqual(t *testing.T) {
	a := wallet.New("same", nil, nil)
	b := wallet.New("same", nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(4)
			go func() { defer wg.Done(); a.Equal(b) }()
			go func() { defer wg.Done(); b.Equal(a) }()
			go func() {
				defer wg.Done()
				_ = a.PutContent(uuid.NewString(), wallet.OpaqueContent{Type: "Note"})
			}()
			go func() {
				defer wg.Done()
				_ = b.PutContent(uuid.NewString(), wallet.OpaqueContent{Type: "Note"})
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Equal calls in opposite directions deadlocked")
	}
}
