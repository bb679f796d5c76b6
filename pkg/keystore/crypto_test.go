package keystore

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// testKDF returns a small Argon2id profile so tests stay fast.
func testKDF() KDFConfig {
	return KDFConfig{
		Type: KDFArgon2id,
		Params: KDFParams{
			MemoryKiB:   64,
			Iterations:  1,
			Parallelism: 1,
		},
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := []byte("legal winner thank year wave sausage worth useful legal winner thank yellow")
	password := []byte("Abcdef1!")

	cb, err := Encrypt(secret, password, testKDF())
	require.NoError(t, err)

	plain, err := Decrypt(cb, password)
	require.NoError(t, err)
	require.Equal(t, secret, plain)
}

func TestEncryptDecryptPBKDF2(t *testing.T) {
	secret := []byte("0101010101010101010101010101010101010101010101010101010101010101")
	password := []byte("Abcdef1!")

	kdf := DefaultPBKDF2()
	kdf.Params.Iterations = 1000 // keep the test quick

	cb, err := Encrypt(secret, password, kdf)
	require.NoError(t, err)
	require.Equal(t, KDFPBKDF2, cb.KDF.Type)

	plain, err := Decrypt(cb, password)
	require.NoError(t, err)
	require.Equal(t, secret, plain)
}

func TestEncryptFreshSaltAndNonce(t *testing.T) {
	secret := []byte("secret")
	password := []byte("Abcdef1!")

	a, err := Encrypt(secret, password, testKDF())
	require.NoError(t, err)
	b, err := Encrypt(secret, password, testKDF())
	require.NoError(t, err)

	require.NotEqual(t, a.IV, b.IV, "nonce reused across encryptions")
	require.NotEqual(t, a.KDF.Params.Salt, b.KDF.Params.Salt, "salt reused across encryptions")
	require.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestDecryptWrongPassword(t *testing.T) {
	cb, err := Encrypt([]byte("secret"), []byte("Abcdef1!"), testKDF())
	require.NoError(t, err)

	_, err = Decrypt(cb, []byte("wrong password"))
	require.ErrorIs(t, err, ErrCryptoFailed)
}

func TestDecryptTamperSensitivity(t *testing.T) {
	password := []byte("Abcdef1!")
	cb, err := Encrypt([]byte("secret"), password, testKDF())
	require.NoError(t, err)

	flipBit := func(hexStr string) string {
		raw, err := hex.DecodeString(hexStr)
		require.NoError(t, err)
		raw[0] ^= 0x01
		return hex.EncodeToString(raw)
	}

	tests := []struct {
		name   string
		mutate func(CryptoBlock) CryptoBlock
	}{
		{"ciphertext", func(c CryptoBlock) CryptoBlock { c.Ciphertext = flipBit(c.Ciphertext); return c }},
		{"iv", func(c CryptoBlock) CryptoBlock { c.IV = flipBit(c.IV); return c }},
		{"mac", func(c CryptoBlock) CryptoBlock { c.MAC = flipBit(c.MAC); return c }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.mutate(cb), password)
			require.ErrorIs(t, err, ErrCryptoFailed)
		})
	}
}

func TestDeriveKeyInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		kdf  KDFConfig
	}{
		{"argon2 zero memory", KDFConfig{Type: KDFArgon2id, Params: KDFParams{Iterations: 1, Parallelism: 1}}},
		{"argon2 zero iterations", KDFConfig{Type: KDFArgon2id, Params: KDFParams{MemoryKiB: 64, Parallelism: 1}}},
		{"pbkdf2 zero iterations", KDFConfig{Type: KDFPBKDF2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt([]byte("x"), []byte("pw"), tt.kdf)
			require.ErrorIs(t, err, ErrInvalidKDFParams)
		})
	}
}

func TestDeriveKeyUnknownKDF(t *testing.T) {
	_, err := Encrypt([]byte("x"), []byte("pw"), KDFConfig{Type: "scrypt"})
	require.ErrorIs(t, err, ErrUnsupportedKDF)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	require.Equal(t, []byte{0, 0, 0, 0}, b)
}
