package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idwallet/internal/domain/types"
)

func TestParseKeyTypeRoundTrip(t *testing.T) {
	all := types.KeyTypes()
	require.Len(t, all, 10)
	for i, kt := range all {
		assert.Equal(t, types.KeyType(i), kt)
		parsed, err := types.ParseKeyType(kt.String())
		require.NoError(t, err)
		assert.Equal(t, kt, parsed)
	}
}

func TestParseKeyTypeRejects(t *testing.T) {
	for _, s := range []string{"", "ed25519verificationkey2018", "Ed25519VerificationKey2018 ", "EcdsaSecp256k1"} {
		_, err := types.ParseKeyType(s)
		assert.ErrorIs(t, err, types.ErrUnsupportedKeyType, "%q", s)
	}
}

func TestKeyTypeOrder(t *testing.T) {
	assert.Equal(t, types.KeyType(0), types.Ed25519VerificationKey2018)
	assert.Equal(t, types.KeyType(3), types.X25519KeyAgreementKey2019)
	assert.Equal(t, types.KeyType(9), types.SchnorrSecp256k1VerificationKey2019)
}

func TestImplemented(t *testing.T) {
	var got []types.KeyType
	for _, kt := range types.KeyTypes() {
		if kt.Implemented() {
			got = append(got, kt)
		}
	}
	assert.Equal(t, []types.KeyType{
		types.Ed25519VerificationKey2018,
		types.EcdsaSecp256k1VerificationKey2019,
		types.EcdsaSecp256k1RecoveryMethod2020,
		types.X25519KeyAgreementKey2019,
		types.Bls12381G1Key2020,
		types.Bls12381G2Key2020,
	}, got)
}

func TestKeyTypeJSON(t *testing.T) {
	b, err := json.Marshal(types.Bls12381G2Key2020)
	require.NoError(t, err)
	assert.Equal(t, `"Bls12381G2Key2020"`, string(b))

	var kt types.KeyType
	require.NoError(t, json.Unmarshal([]byte(`"RsaVerificationKey2018"`), &kt))
	assert.Equal(t, types.RsaVerificationKey2018, kt)

	assert.Error(t, json.Unmarshal([]byte(`"Rsa"`), &kt))

	_, err = json.Marshal(types.KeyType(42))
	assert.Error(t, err)
	assert.Equal(t, "KeyType(42)", types.KeyType(42).String())
}
