package wallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Standard BIP39 test vector (Trezor vector set, empty passphrase).
const (
	vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	vectorSeedHex  = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
)

func TestGenerateMnemonic(t *testing.T) {
	for _, words := range []int{12, 24} {
		mnemonic, err := GenerateMnemonic(words)
		require.NoError(t, err, "generate %d words", words)
		require.Len(t, strings.Fields(mnemonic), words)
		require.NoError(t, ValidateMnemonic(mnemonic))
	}
}

func TestGenerateMnemonicInvalidCount(t *testing.T) {
	for _, words := range []int{0, 11, 15, 16, 18, 21, 25} {
		_, err := GenerateMnemonic(words)
		require.ErrorIs(t, err, ErrInvalidWordCount, "words=%d", words)
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		wantErr error
	}{
		{"valid vector", vectorMnemonic, nil},
		{"extra whitespace", "  " + strings.ReplaceAll(vectorMnemonic, " ", "  ") + " ", nil},
		{"too short", "abandon abandon about", ErrInvalidWordCount},
		{"unknown word", strings.Replace(vectorMnemonic, "about", "aboot", 1), ErrUnknownWord},
		{"bad checksum", strings.Replace(vectorMnemonic, "about", "abandon", 1), ErrChecksumMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMnemonic(tt.phrase)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMnemonicToSeedVector(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	require.Len(t, seed, 64)
	require.Equal(t, vectorSeedHex, hex.EncodeToString(seed))
}

func TestMnemonicToSeedDeterministic(t *testing.T) {
	a := MnemonicToSeed(vectorMnemonic, "secret")
	b := MnemonicToSeed(vectorMnemonic, "secret")
	require.Equal(t, a, b, "same mnemonic and passphrase must produce the same seed")

	c := MnemonicToSeed(vectorMnemonic, "other")
	require.NotEqual(t, a, c, "different passphrases must produce different seeds")
}
