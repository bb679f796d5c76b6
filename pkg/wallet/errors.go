package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clawforge/web3wallet/pkg/keystore"
)

var (
	// ErrInvalidWordCount is returned for mnemonic lengths outside {12, 24}.
	ErrInvalidWordCount = errors.New("word count must be 12 or 24")

	// ErrUnknownWord is returned when a mnemonic word is not in the BIP39
	// wordlist.
	ErrUnknownWord = errors.New("word not in BIP39 wordlist")

	// ErrChecksumMismatch is returned when the mnemonic checksum does not
	// validate against its entropy.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")

	// ErrInvalidPrivateKey is returned for private keys that are not 64 hex
	// characters or not a valid secp256k1 scalar.
	ErrInvalidPrivateKey = errors.New("private key must be 64 hex characters")

	// ErrInvalidPathSegment is returned for malformed or out-of-range
	// derivation path segments.
	ErrInvalidPathSegment = errors.New("invalid derivation path segment")

	// ErrHardenedFromPublic is returned when a hardened segment is requested
	// without access to the parent private key.
	ErrHardenedFromPublic = errors.New("hardened derivation requires the parent private key")

	// ErrDeriveCountExceeded bounds batch derivation size.
	ErrDeriveCountExceeded = fmt.Errorf("derivation count must be between 1 and %d", MaxDeriveCount)

	// ErrDerivationUnsupported is returned when derivation is requested on
	// an imported wallet, which has no seed or chain code.
	ErrDerivationUnsupported = errors.New("derivation not supported for imported wallets")

	// ErrUnsupportedNetwork is returned for network names with no profile.
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrPasswordMismatch is returned when password confirmation differs.
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// ErrPassphraseMismatch is returned when re-derivation from a stored
	// mnemonic does not reproduce the stored address, which means the BIP39
	// passphrase differs from the one used at creation.
	ErrPassphraseMismatch = errors.New("derived address does not match the stored wallet; check the BIP39 passphrase")

	// ErrEntropySource is returned when the secure random source fails.
	ErrEntropySource = errors.New("entropy source unavailable")
)

// PasswordPolicyError names every unmet password requirement.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return "password policy violation: " + strings.Join(e.Violations, ", ")
}

// Kind is the coarse error taxonomy surfaced to the output layer. Kinds, not
// concrete types: callers branch on these, messages stay verbatim.
type Kind string

const (
	KindInputValidation Kind = "input_validation"
	KindCryptoFailure   Kind = "crypto_failure"
	KindKeystoreFormat  Kind = "keystore_format"
	KindFilesystem      Kind = "filesystem"
	KindDerivationLimit Kind = "derivation_limit"
	KindEntropySource   Kind = "entropy_source"
	KindUnknown         Kind = "unknown"
)

// KindOf classifies an error from any wallet or keystore operation.
func KindOf(err error) Kind {
	var policyErr *PasswordPolicyError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, keystore.ErrCryptoFailed):
		return KindCryptoFailure
	case errors.Is(err, keystore.ErrUnsupportedVersion),
		errors.Is(err, keystore.ErrUnsupportedCipher),
		errors.Is(err, keystore.ErrUnsupportedKDF),
		errors.Is(err, keystore.ErrMalformedDocument),
		errors.Is(err, keystore.ErrInvalidKDFParams):
		return KindKeystoreFormat
	case errors.Is(err, keystore.ErrAliasCollision),
		errors.Is(err, keystore.ErrNotFound),
		errors.Is(err, keystore.ErrInvalidAlias):
		return KindFilesystem
	case errors.Is(err, ErrDeriveCountExceeded),
		errors.Is(err, ErrInvalidPathSegment),
		errors.Is(err, ErrHardenedFromPublic):
		return KindDerivationLimit
	case errors.Is(err, ErrEntropySource), errors.Is(err, keystore.ErrEntropy):
		return KindEntropySource
	case errors.Is(err, ErrInvalidWordCount),
		errors.Is(err, ErrUnknownWord),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrInvalidPrivateKey),
		errors.Is(err, ErrDerivationUnsupported),
		errors.Is(err, ErrUnsupportedNetwork),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPassphraseMismatch),
		errors.As(err, &policyErr):
		return KindInputValidation
	default:
		return KindUnknown
	}
}
