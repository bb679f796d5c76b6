package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	CipherAESGCM = "aes-256-gcm"

	KDFArgon2id = "argon2id"
	KDFPBKDF2   = "pbkdf2"

	saltLength  = 16
	nonceLength = 12
	keyLength   = 32
	macLength   = 32

	// Argon2id defaults, OWASP-recommended profile.
	argon2Memory      = 47_104 // KiB
	argon2Iterations  = 1
	argon2Parallelism = 1

	// Reduced profile for memory-constrained hosts.
	argon2LowMemory     = 19_456 // KiB
	argon2LowIterations = 2

	pbkdf2Iterations = 100_000
)

// KDFParams describes one key derivation function invocation. Salt is hex so
// the struct round-trips through the keystore document unchanged.
type KDFParams struct {
	MemoryKiB   uint32 `json:"memory_kib,omitempty"`
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism,omitempty"`
	Salt        string `json:"salt"`
}

// KDFConfig names the KDF variant and carries its parameters.
type KDFConfig struct {
	Type   string    `json:"type"`
	Params KDFParams `json:"params"`
}

// DefaultArgon2 returns the standard Argon2id configuration. The salt is
// generated fresh at encryption time.
func DefaultArgon2() KDFConfig {
	return KDFConfig{
		Type: KDFArgon2id,
		Params: KDFParams{
			MemoryKiB:   argon2Memory,
			Iterations:  argon2Iterations,
			Parallelism: argon2Parallelism,
		},
	}
}

// LowMemoryArgon2 returns the reduced Argon2id configuration.
func LowMemoryArgon2() KDFConfig {
	return KDFConfig{
		Type: KDFArgon2id,
		Params: KDFParams{
			MemoryKiB:   argon2LowMemory,
			Iterations:  argon2LowIterations,
			Parallelism: argon2Parallelism,
		},
	}
}

// DefaultPBKDF2 returns the legacy PBKDF2-HMAC-SHA256 configuration.
func DefaultPBKDF2() KDFConfig {
	return KDFConfig{
		Type: KDFPBKDF2,
		Params: KDFParams{
			Iterations: pbkdf2Iterations,
		},
	}
}

// deriveKey stretches password into a 32-byte AES key. The caller must wipe
// the returned key after use.
func deriveKey(password []byte, kdf KDFConfig, salt []byte) ([]byte, error) {
	switch kdf.Type {
	case KDFArgon2id:
		if kdf.Params.MemoryKiB == 0 || kdf.Params.Iterations == 0 || kdf.Params.Parallelism == 0 {
			return nil, fmt.Errorf("%w: argon2id requires non-zero memory, iterations and parallelism", ErrInvalidKDFParams)
		}
		return argon2.IDKey(password, salt, kdf.Params.Iterations, kdf.Params.MemoryKiB, kdf.Params.Parallelism, keyLength), nil
	case KDFPBKDF2:
		if kdf.Params.Iterations == 0 {
			return nil, fmt.Errorf("%w: pbkdf2 requires a non-zero iteration count", ErrInvalidKDFParams)
		}
		return pbkdf2.Key(password, salt, int(kdf.Params.Iterations), keyLength, sha256.New), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKDF, kdf.Type)
	}
}

// computeMAC returns HMAC-SHA256(key, ciphertext||nonce). The GCM tag inside
// the ciphertext is authoritative; this MAC is an additional integrity check
// verified before any decryption is attempted.
func computeMAC(key, ciphertext, nonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(ciphertext)
	mac.Write(nonce)
	return mac.Sum(nil)
}

// Encrypt seals secret under password with AES-256-GCM. A fresh salt and
// nonce are drawn per call; a GCM nonce must never repeat under the same key.
func Encrypt(secret, password []byte, kdf KDFConfig) (CryptoBlock, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return CryptoBlock{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return CryptoBlock{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}

	key, err := deriveKey(password, kdf, salt)
	if err != nil {
		return CryptoBlock{}, err
	}
	defer Wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return CryptoBlock{}, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return CryptoBlock{}, fmt.Errorf("failed to create GCM: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, secret, nil)
	mac := computeMAC(key, ciphertext, nonce)

	kdf.Params.Salt = hex.EncodeToString(salt)
	return CryptoBlock{
		Cipher:     CipherAESGCM,
		Ciphertext: hex.EncodeToString(ciphertext),
		IV:         hex.EncodeToString(nonce),
		KDF:        kdf,
		MAC:        hex.EncodeToString(mac),
	}, nil
}

// Decrypt verifies the MAC and opens the ciphertext. Both a MAC mismatch and
// a GCM tag failure surface as ErrCryptoFailed. The caller must wipe the
// returned plaintext after use.
func Decrypt(cb CryptoBlock, password []byte) ([]byte, error) {
	if cb.Cipher != CipherAESGCM {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, cb.Cipher)
	}

	ciphertext, err := hex.DecodeString(cb.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ciphertext hex", ErrMalformedDocument)
	}
	nonce, err := hex.DecodeString(cb.IV)
	if err != nil || len(nonce) != nonceLength {
		return nil, fmt.Errorf("%w: invalid iv", ErrMalformedDocument)
	}
	storedMAC, err := hex.DecodeString(cb.MAC)
	if err != nil || len(storedMAC) != macLength {
		return nil, fmt.Errorf("%w: invalid mac", ErrMalformedDocument)
	}
	salt, err := hex.DecodeString(cb.KDF.Params.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt hex", ErrMalformedDocument)
	}

	key, err := deriveKey(password, cb.KDF, salt)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	// MAC check comes first so tampered input never reaches the cipher.
	if !hmac.Equal(computeMAC(key, ciphertext, nonce), storedMAC) {
		return nil, ErrCryptoFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrCryptoFailed
	}
	return plaintext, nil
}

// Wipe overwrites b with zeroes. Buffers holding passwords, keys, seeds and
// mnemonics go through here on every exit path.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
