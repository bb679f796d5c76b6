package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// First account of the standard test mnemonic at m/44'/60'/0'/0/0. This is
// the address MetaMask shows for the same phrase.
const vectorAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

func TestDeriveKeyVector(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	path, err := ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)

	kp, err := DeriveKey(seed, path)
	require.NoError(t, err)
	defer kp.Wipe()

	require.Equal(t, vectorAddress, kp.Address.Hex())
}

func TestDeriveKeyDeterministic(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	path, err := ParsePath("m/44'/60'/0'/0/3")
	require.NoError(t, err)

	a, err := DeriveKey(seed, path)
	require.NoError(t, err)
	b, err := DeriveKey(seed, path)
	require.NoError(t, err)

	require.Equal(t, a.Address, b.Address)
	a.Wipe()
	b.Wipe()
}

func TestDeriveAddressMatchesKeyPair(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	path, err := ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	kp, err := DeriveKey(seed, path)
	require.NoError(t, err)
	defer kp.Wipe()

	require.Equal(t, kp.Address.Hex(), DeriveAddress(&kp.PrivateKey.PublicKey))
}

func TestParsePathInvalid(t *testing.T) {
	for _, path := range []string{"", "m/", "m/44'/60'/x", "44'/60'/0'/0/4294967296"} {
		_, err := ParsePath(path)
		require.ErrorIs(t, err, ErrInvalidPathSegment, "path %q", path)
	}
}

func TestDeriveRange(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	base, err := ParsePath("m/44'/60'/0'/0")
	require.NoError(t, err)

	accounts, err := DeriveRange(seed, base, 0, 5)
	require.NoError(t, err)
	require.Len(t, accounts, 5)
	require.Equal(t, vectorAddress, accounts[0].Address)

	seen := map[string]bool{}
	for i, acc := range accounts {
		require.Equal(t, uint32(i), acc.Index)
		require.False(t, seen[acc.Address], "duplicate address %s", acc.Address)
		seen[acc.Address] = true
	}
}

func TestDeriveRangeRestartable(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	base, err := ParsePath("m/44'/60'/0'/0")
	require.NoError(t, err)

	full, err := DeriveRange(seed, base, 0, 8)
	require.NoError(t, err)

	// Restarting mid-sequence reproduces the tail exactly.
	for _, k := range []uint32{0, 3, 7} {
		tail, err := DeriveRange(seed, base, k, 8-k)
		require.NoError(t, err, "restart at %d", k)
		require.Equal(t, full[k:], tail, "restart at %d diverges", k)
	}
}

func TestDeriveRangeCountBounds(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	base, err := ParsePath("m/44'/60'/0'/0")
	require.NoError(t, err)

	for _, count := range []uint32{0, MaxDeriveCount + 1} {
		_, err := DeriveRange(seed, base, 0, count)
		require.ErrorIs(t, err, ErrDeriveCountExceeded, "count=%d", count)
	}
}

func TestDeriveRangeRequiresEthereumBase(t *testing.T) {
	seed := MnemonicToSeed(vectorMnemonic, "")
	defer wipe(seed)

	base, err := ParsePath("m/44'/0'/0'/0") // Bitcoin coin type
	require.NoError(t, err)

	_, err = DeriveRange(seed, base, 0, 1)
	require.ErrorIs(t, err, ErrInvalidPathSegment)
}
