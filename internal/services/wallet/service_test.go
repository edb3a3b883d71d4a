package wallet_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"idwallet/internal/crypto"
	"idwallet/internal/domain"
	"idwallet/internal/domain/types"
	svc "idwallet/internal/services/wallet"
	"idwallet/internal/store"
	corewallet "idwallet/internal/wallet"
)

const pass = "Correct-Horse-42"

func newService(t *testing.T, opts ...corewallet.Option) (*svc.Service, domain.WalletID) {
	t.Helper()
	s := svc.New(store.NewWalletFileStore(t.TempDir()), zaptest.NewLogger(t), opts...)
	id, err := s.CreateWallet(pass)
	require.NoError(t, err)
	return s, id
}

func TestCreateWallet_WeakPassphrase(t *testing.T) {
	s := svc.New(store.NewWalletFileStore(t.TempDir()), zaptest.NewLogger(t))
	for _, p := range []string{"short1!A", "alllowercase-123", "ALLUPPERCASE-123", "NoDigitsHere!!", "NoSymbols12345"} {
		_, err := s.CreateWallet(p)
		assert.ErrorIs(t, err, svc.ErrWeakPassphrase, p)
	}
	ids, err := s.ListWallets()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCreateWallet_Listed(t *testing.T) {
	s, id := newService(t)
	ids, err := s.ListWallets()
	require.NoError(t, err)
	assert.Equal(t, []domain.WalletID{id}, ids)

	keys, err := s.ListKeys(id, pass)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestGenerateSignVerify(t *testing.T) {
	s, id := newService(t)
	for _, kt := range []types.KeyType{
		types.Ed25519VerificationKey2018,
		types.EcdsaSecp256k1VerificationKey2019,
		types.EcdsaSecp256k1RecoveryMethod2020,
		types.Bls12381G1Key2020,
		types.Bls12381G2Key2020,
	} {
		t.Run(kt.String(), func(t *testing.T) {
			sum, err := s.GenerateKey(id, pass, kt, []string{"did:example:me"})
			require.NoError(t, err)
			assert.Equal(t, kt, sum.Type)
			assert.Equal(t, []string{"did:example:me"}, sum.Controller)
			assert.Equal(t, crypto.Fingerprint(sum.PublicKey), sum.Fingerprint)

			sig, err := s.Sign(id, pass, sum.Reference, []byte("payload"))
			require.NoError(t, err)
			ok, err := s.Verify(id, pass, sum.Reference, []byte("payload"), sig)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = crypto.NewPublicKeyInfo(kt, sum.PublicKey).Verify([]byte("payload"), sig)
			require.NoError(t, err)
			assert.True(t, ok, "signature verifies against exported public key")
		})
	}
	keys, err := s.ListKeys(id, pass)
	require.NoError(t, err)
	assert.Len(t, keys, 5)
}

func TestEncryptDecrypt(t *testing.T) {
	s, id := newService(t)
	sum, err := s.GenerateKey(id, pass, types.X25519KeyAgreementKey2019, nil)
	require.NoError(t, err)

	box, err := s.Encrypt(id, pass, sum.Reference, []byte("hi"))
	require.NoError(t, err)
	pt, err := s.Decrypt(id, pass, sum.Reference, box)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), pt)

	_, err = s.Sign(id, pass, sum.Reference, []byte("m"))
	assert.ErrorIs(t, err, crypto.ErrWrongKeyType)
}

func TestImportKey(t *testing.T) {
	s, id := newService(t)
	seed, err := hex.DecodeString("26c76712d89d906e6672dafa614c42e5cb1caac8c6568e4d2493087db51f0d36")
	require.NoError(t, err)

	sum, err := s.ImportKey(id, pass, types.Ed25519VerificationKey2018, seed, nil)
	require.NoError(t, err)
	assert.Equal(t, "c2247870536a192d142d056abefca68d6193158e7c1a59c1654c954eccaff894", hex.EncodeToString(sum.PublicKey))
	assert.Empty(t, sum.Controller)

	_, err = s.ImportKey(id, pass, types.Ed25519VerificationKey2018, seed[:5], nil)
	assert.ErrorIs(t, err, crypto.ErrWrongKeyLength)
}

func TestWrongPassphrase(t *testing.T) {
	s, id := newService(t)
	_, err := s.ListKeys(id, "Wrong-Horse-42")
	assert.ErrorIs(t, err, corewallet.ErrDecryptionFailed)

	_, err = s.GenerateKey(id, "Wrong-Horse-42", types.Ed25519VerificationKey2018, nil)
	assert.ErrorIs(t, err, corewallet.ErrDecryptionFailed)
}

func TestRemoveKey(t *testing.T) {
	s, id := newService(t)
	sum, err := s.GenerateKey(id, pass, types.Ed25519VerificationKey2018, nil)
	require.NoError(t, err)

	require.NoError(t, s.RemoveKey(id, pass, sum.Reference))
	assert.ErrorIs(t, s.RemoveKey(id, pass, sum.Reference), corewallet.ErrNoSuchReference)

	_, err = s.Sign(id, pass, sum.Reference, []byte("m"))
	assert.ErrorIs(t, err, corewallet.ErrNoSuchReference)
}

func TestUnsupportedKeyTypeLeavesWalletUnchanged(t *testing.T) {
	s, id := newService(t)
	_, err := s.GenerateKey(id, pass, types.RsaVerificationKey2018, nil)
	assert.ErrorIs(t, err, crypto.ErrUnsupportedKeyType)

	keys, err := s.ListKeys(id, pass)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMissingWallet(t *testing.T) {
	s, _ := newService(t)
	_, err := s.ListKeys("does-not-exist", pass)
	assert.ErrorIs(t, err, store.ErrWalletNotFound)
}

func TestSaltedKDFService(t *testing.T) {
	kdf := corewallet.ScryptKDF{N: 1 << 10, R: 8, P: 1}
	s, id := newService(t, corewallet.WithKDF(kdf))
	sum, err := s.GenerateKey(id, pass, types.Ed25519VerificationKey2018, nil)
	require.NoError(t, err)
	keys, err := s.ListKeys(id, pass)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, sum.Reference, keys[0].Reference)
}

func TestDeleteWallet(t *testing.T) {
	s, id := newService(t)

	err := s.DeleteWallet(id, "Wrong-Horse-42")
	assert.ErrorIs(t, err, corewallet.ErrDecryptionFailed)
	ids, err := s.ListWallets()
	require.NoError(t, err)
	assert.Equal(t, []domain.WalletID{id}, ids, "wrong passphrase keeps the wallet")

	require.NoError(t, s.DeleteWallet(id, pass))
	ids, err = s.ListWallets()
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = s.DeleteWallet(id, pass)
	assert.ErrorIs(t, err, store.ErrWalletNotFound)
}
