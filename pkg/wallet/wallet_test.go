package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// A private key of 32 0x01 bytes resolves to this address in every
// conforming implementation.
const importedVectorAddress = "0x1a642f0E3c3aF545E7AcBD38b07251B3990914F1"

func TestFromMnemonic(t *testing.T) {
	w, err := FromMnemonic(vectorMnemonic, "", "mainnet")
	require.NoError(t, err)
	defer w.Wipe()

	require.Equal(t, TypeHD, w.Type)
	require.Equal(t, vectorAddress, w.Address.Hex())
	require.Equal(t, vectorMnemonic, w.Mnemonic())
}

func TestFromMnemonicUnsupportedNetwork(t *testing.T) {
	_, err := FromMnemonic(vectorMnemonic, "", "dogecoin")
	require.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestFromPrivateKey(t *testing.T) {
	key := strings.Repeat("01", 32)

	for _, input := range []string{key, "0x" + key} {
		w, err := FromPrivateKey(input, "mainnet")
		require.NoError(t, err, "input %q", input)
		require.Equal(t, importedVectorAddress, w.Address.Hex())
		require.Equal(t, TypeImported, w.Type)
		w.Wipe()
	}
}

func TestFromPrivateKeyInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"too short", "0101"},
		{"too long", strings.Repeat("01", 33)},
		{"not hex", strings.Repeat("0g", 32)},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromPrivateKey(tt.key, "mainnet")
			require.ErrorIs(t, err, ErrInvalidPrivateKey)
		})
	}
}

func TestImportedWalletCannotDerive(t *testing.T) {
	w, err := FromPrivateKey(strings.Repeat("01", 32), "mainnet")
	require.NoError(t, err)
	defer w.Wipe()

	_, err = w.DeriveAccount(0)
	require.ErrorIs(t, err, ErrDerivationUnsupported)
}

func TestWalletSecret(t *testing.T) {
	hd, err := FromMnemonic(vectorMnemonic, "", "mainnet")
	require.NoError(t, err)
	defer hd.Wipe()
	require.Equal(t, vectorMnemonic, string(hd.Secret()))

	key := strings.Repeat("01", 32)
	imp, err := FromPrivateKey("0x"+key, "mainnet")
	require.NoError(t, err)
	defer imp.Wipe()
	require.Equal(t, key, string(imp.Secret()))
}

func TestDeriveAccountMatchesCanonicalPath(t *testing.T) {
	w, err := FromMnemonic(vectorMnemonic, "", "mainnet")
	require.NoError(t, err)
	defer w.Wipe()

	acc, err := w.DeriveAccount(0)
	require.NoError(t, err)
	require.Equal(t, w.Address.Hex(), acc.Address)
	require.Equal(t, "m/44'/60'/0'/0/0", acc.Path)
}
